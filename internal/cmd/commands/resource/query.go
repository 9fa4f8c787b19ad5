package resource

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dynata/demandapi/pkg/demand"
)

// integerParams are the paging parameters the API types as integers.
var integerParams = map[string]bool{
	"offset": true,
	"limit":  true,
}

// queryFlag collects repeated -query key=value flags.
type queryFlag struct {
	keys   []string
	values map[string][]string
}

func (q *queryFlag) String() string {
	if q == nil {
		return ""
	}
	var parts []string
	for _, k := range q.keys {
		for _, v := range q.values[k] {
			parts = append(parts, k+"="+v)
		}
	}
	return strings.Join(parts, ",")
}

func (q *queryFlag) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("query parameter must be key=value, got: %q", s)
	}

	if q.values == nil {
		q.values = map[string][]string{}
	}
	if _, seen := q.values[key]; !seen {
		q.keys = append(q.keys, key)
	}
	q.values[key] = append(q.values[key], value)
	return nil
}

// Query converts the collected parameters. Paging parameters are converted to
// integers; a key given more than once becomes a repeated parameter.
func (q *queryFlag) Query() (demand.Query, error) {
	if len(q.values) == 0 {
		return nil, nil
	}

	query := demand.Query{}
	for key, values := range q.values {
		if integerParams[key] && len(values) > 1 {
			return nil, fmt.Errorf("query parameter %q may only be given once", key)
		}

		if len(values) > 1 {
			query[key] = values
			continue
		}

		if integerParams[key] {
			n, err := strconv.Atoi(values[0])
			if err != nil {
				return nil, fmt.Errorf("query parameter %q must be an integer, got: %q", key, values[0])
			}
			query[key] = n
			continue
		}

		query[key] = values[0]
	}
	return query, nil
}
