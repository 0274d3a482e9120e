package param

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
	decoder.RegisterConverter(decimal.Decimal{}, func(value string) reflect.Value {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(d)
	})
}

// Binding decodes request parameters into v. A json body wins; query
// string values fill in for GET and friends.
func Binding(r *http.Request, v interface{}) error {
	if body := r.Body; body != nil && r.ContentLength > 0 &&
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return json.NewDecoder(body).Decode(v)
	}

	return decoder.Decode(v, r.URL.Query())
}
