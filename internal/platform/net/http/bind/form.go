package bind

import (
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	perr "reviewlens/internal/platform/errors"

	"github.com/go-playground/form/v4"
)

const maxFormBytes = 64 << 10

var decoder = newDecoder()

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("form")
	// repeated keys and comma lists both fill a slice
	d.RegisterCustomTypeFunc(func(vals []string) (any, error) {
		return splitList(vals), nil
	}, []string{})
	d.RegisterCustomTypeFunc(func(vals []string) (any, error) {
		parts := splitList(vals)
		out := make([]int, len(parts))
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}, []int{})
	d.RegisterCustomTypeFunc(func(vals []string) (any, error) {
		return time.ParseDuration(vals[0])
	}, time.Duration(0))
	return d
}

// ParseForm decodes an urlencoded POST body into T using `form` tags and validates it
func ParseForm[T any](r *http.Request) (T, error) {
	var zero T
	r.Body = http.MaxBytesReader(nil, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid form")
	}
	return decodeValues[T](r.PostForm)
}

// ParseQuery decodes the query string into T using `form` tags and validates it
func ParseQuery[T any](r *http.Request) (T, error) {
	return decodeValues[T](r.URL.Query())
}

func decodeValues[T any](vals url.Values) (T, error) {
	var dst T
	if err := decoder.Decode(&dst, trimValues(vals)); err != nil {
		return dst, decodeErr(err)
	}
	if err := Validate(dst); err != nil {
		return dst, err
	}
	return dst, nil
}

// trimValues drops blank inputs so pointers stay nil and numbers stay zero
func trimValues(vals url.Values) url.Values {
	out := make(url.Values, len(vals))
	for k, vs := range vals {
		for _, v := range vs {
			if v = strings.TrimSpace(v); v != "" {
				out[k] = append(out[k], v)
			}
		}
	}
	return out
}

func splitList(vals []string) []string {
	var parts []string
	for _, v := range vals {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
	}
	return parts
}

// decodeErr reports the first failing field in name order
func decodeErr(err error) error {
	var de form.DecodeErrors
	if !errors.As(err, &de) || len(de) == 0 {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "bind target")
	}
	names := make([]string, 0, len(de))
	for k := range de {
		names = append(names, k)
	}
	sort.Strings(names)
	name := names[0]
	return perr.WithField(perr.InvalidArgf("%s: %v", name, de[name]), name)
}
