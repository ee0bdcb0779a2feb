// Package paginate translates page/results query parameters into the
// skip/limit window applied by repositories.
package paginate

const defaultResultsPerPage = 10

// Window is a skip/limit constraint. Limit == 0 means unconstrained.
type Window struct {
	Skip  int64
	Limit int64
}

// FromQuery builds a Window from optional page and results parameters
// (zero = not supplied, validated positive at the boundary):
//   - page set: limit is results (default 10), skip is (page-1)*limit.
//   - only results set: limit only, no skip.
//   - neither: no constraint.
func FromQuery(page, results int) Window {
	if page > 0 {
		limit := int64(defaultResultsPerPage)
		if results > 0 {
			limit = int64(results)
		}
		return Window{Skip: int64(page-1) * limit, Limit: limit}
	}
	if results > 0 {
		return Window{Limit: int64(results)}
	}
	return Window{}
}

// Constrained reports whether the window limits the result set.
func (w Window) Constrained() bool {
	return w.Limit > 0
}
