package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
)

func decode(resp *http.Response, out interface{}) error {
	return json.NewDecoder(resp.Body).Decode(out)
}

func readBody(resp *http.Response) string {
	raw, _ := io.ReadAll(resp.Body)
	return string(raw)
}
