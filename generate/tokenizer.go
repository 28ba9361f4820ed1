package generate

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// charsPerToken is the fallback estimate and the inverse ratio used to turn
// a token budget into a character ceiling.
const charsPerToken = 3

// TokenCounter counts the tokens a model would see for text.
type TokenCounter interface {
	Count(text string) int
}

// Approximate estimates tokens as len(text)/3.
type Approximate struct{}

func (Approximate) Count(text string) int {
	return len(text) / charsPerToken
}

type encodingCounter struct {
	enc *tiktoken.Tiktoken
}

func (c encodingCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

const (
	o200kBase  = "o200k_base"
	cl100kBase = "cl100k_base"
)

// encodings lists, per model code, the tokenizer encodings to try in order.
// cl100k_base is close enough when the loader lacks the newer table.
var encodings = map[string][]string{
	"gpt-4o":       {o200kBase, cl100kBase},
	"gpt-4.1":      {o200kBase, cl100kBase},
	"gpt-4.1-mini": {o200kBase, cl100kBase},
	"gpt-5":        {o200kBase, cl100kBase},
	"gpt-5-mini":   {o200kBase, cl100kBase},
}

var (
	loaderOnce sync.Once

	encMu    sync.Mutex
	encCache = map[string]*tiktoken.Tiktoken{}
)

func encoding(name string) (*tiktoken.Tiktoken, error) {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	encMu.Lock()
	defer encMu.Unlock()
	if enc, ok := encCache[name]; ok {
		return enc, nil
	}
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	encCache[name] = enc
	return enc, nil
}

// CounterFor returns the exact tokenizer for modelCode when one is known,
// otherwise Approximate.
func CounterFor(modelCode string) TokenCounter {
	for _, name := range encodings[modelCode] {
		if enc, err := encoding(name); err == nil {
			return encodingCounter{enc: enc}
		}
	}
	return Approximate{}
}
