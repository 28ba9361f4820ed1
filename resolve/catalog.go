package resolve

import "github.com/spetersoncode/gitscribe/model"

// Entry describes one registry model and whether it can be used now.
type Entry struct {
	Detail    model.Detail
	Available bool
	Route     Route // zero unless Available
}

// Catalog lists the registry in order with the route each available model
// would use.
func (r *Resolver) Catalog(exclusions []string, preferRouter bool) []Entry {
	entries := make([]Entry, 0, len(r.registry))
	for _, d := range r.registry {
		e := Entry{Detail: d}
		if r.IsAvailable(d.Name().String(), exclusions) {
			if route, err := r.Resolve(d.Name().String(), preferRouter); err == nil {
				e.Available, e.Route = true, route
			}
		}
		entries = append(entries, e)
	}
	return entries
}
