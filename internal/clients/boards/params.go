package boards

import (
	"fmt"
	"net/url"
	"strconv"
)

type SearchParameters struct {
	Query   string
	Page    int
	PerPage int
}

func (s SearchParameters) Validate() error {

	if s.Page < 0 {
		return fmt.Errorf("page must be non-negative")
	}

	if s.PerPage < 0 {
		return fmt.Errorf("perPage must be non-negative")
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}

	if s.Query != "" {
		params.Add("q", s.Query)
	}

	if s.Page > 0 {
		params.Add("page", strconv.Itoa(s.Page))
	}

	if s.PerPage > 0 {
		params.Add("perPage", strconv.Itoa(s.PerPage))
	}

	return params
}
