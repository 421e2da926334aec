package weather

import (
	"fmt"
	"sort"
	"strings"
)

// Ranking pairs a location name with a derived value.
type Ranking struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Region holds the weather histories of the locations in one named region,
// keyed by location name. A Region is not safe for concurrent writers.
type Region struct {
	Name string

	histories map[string]*History
}

// NewRegion returns an empty region.
func NewRegion(name string) *Region {
	return &Region{
		Name:      name,
		histories: make(map[string]*History),
	}
}

// Add registers h under h.Name. If a history with that name is already
// registered, Add keeps the existing one and returns false.
func (r *Region) Add(h *History) bool {
	if _, ok := r.histories[h.Name]; ok {
		return false
	}
	r.histories[h.Name] = h
	return true
}

// History returns the history registered under name.
func (r *Region) History(name string) (*History, bool) {
	h, ok := r.histories[name]
	return h, ok
}

// Len returns the number of registered locations.
func (r *Region) Len() int {
	return len(r.histories)
}

// Names returns the registered location names in ascending order.
func (r *Region) Names() []string {
	names := make([]string, 0, len(r.histories))
	for name := range r.histories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SnowiestLocation returns the location with the highest PercentageSnowfall.
// ok is false when the region is empty. Ties resolve to the alphabetically
// first name. A location without rain or snow data fails the whole call with
// ErrDivisionByZero.
func (r *Region) SnowiestLocation() (best Ranking, ok bool, err error) {
	for _, name := range r.Names() {
		pct, err := r.histories[name].PercentageSnowfall()
		if err != nil {
			return Ranking{}, false, fmt.Errorf("region %s: %w", r.Name, err)
		}
		if !ok || pct > best.Value {
			best = Ranking{Name: name, Value: pct}
			ok = true
		}
	}
	return best, ok, nil
}

// Summaries returns one Summary per location, ordered by location name.
func (r *Region) Summaries() []Summary {
	out := make([]Summary, 0, len(r.histories))
	for _, name := range r.Names() {
		out = append(out, Summarize(r.histories[name]))
	}
	return out
}

func (r *Region) String() string {
	var b strings.Builder
	b.WriteString(r.Name + ":")
	for _, name := range r.Names() {
		b.WriteString("\n" + r.histories[name].String())
	}
	return b.String()
}
