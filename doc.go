// Package gitscribe turns staged repository changes into a validated commit message
// written by a language model, then optionally commits and pushes it.
//
// The root package holds the types shared by every layer: providers and route
// identifiers, chat messages and responses, request options, response schemas
// and the categorized backend error.
//
// # Layout
//
//   - [github.com/spetersoncode/gitscribe/model]: the static model registry
//   - [github.com/spetersoncode/gitscribe/resolve]: picks a route and credential for a model
//   - [github.com/spetersoncode/gitscribe/client]: dispatches chat requests to a route's backend
//   - [github.com/spetersoncode/gitscribe/generate]: prompt assembly, token budget, fan-out
//   - [github.com/spetersoncode/gitscribe/validate]: commit message structure checks
//   - [github.com/spetersoncode/gitscribe/secrets]: pre-flight secret scan of the diff
//   - [github.com/spetersoncode/gitscribe/git]: repository discovery and git commands
//   - [github.com/spetersoncode/gitscribe/config]: flags, GITSCRIBE_* variables and .gitscribe.yaml
//   - [github.com/spetersoncode/gitscribe/workflow]: the add, status, generate, commit, push sequencer
//   - [github.com/spetersoncode/gitscribe/mcp]: validation, scanning and model listing as MCP tools
//
// # Basic Usage
//
// Resolve a route and generate a single message:
//
//	r := resolve.New()
//	route, err := r.Resolve("claude-sonnet-4-5", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	g := generate.New(client.New(client.Config{}))
//	res := g.Generate(ctx, route, generate.Request{Diffstat: stat, Diff: diff})
//	if res.Failed() {
//	    log.Fatal(res.Err())
//	}
//	if o := validate.Message(res.Output()); !o.Valid {
//	    log.Fatal(o.Reason)
//	}
//	fmt.Println(res.Output())
//
// # Structured Output
//
// Models that support it are asked for a fixed schema instead of free text:
//
//	schema := &gitscribe.ResponseSchema{
//	    Name:   "commit_message",
//	    Schema: gitscribe.SchemaFrom[CommitFields]().Required("summary_line", "extra_lines").Build(),
//	}
//	resp, err := provider.Chat(ctx, messages, gitscribe.WithResponseSchema(schema))
package gitscribe
