package routeconfig

import (
	"bytes"
	"encoding/json"
	"io"
)

// wireRoute is the JSON shape of a RouteConfig. A nil Children pointer omits
// the key; a pointer to an empty slice writes [].
type wireRoute struct {
	Route    string               `json:"route"`
	Title    *string              `json:"title,omitempty"`
	Params   map[string]ParamType `json:"params"`
	Children *[]wireRoute         `json:"children,omitempty"`
}

func (rc *RouteConfig) wire() wireRoute {
	w := wireRoute{
		Route:  rc.route,
		Params: rc.params.Map(),
	}
	if rc.hasTitle {
		title := rc.title
		w.Title = &title
	}
	if rc.children.kind != NoSubtree {
		children := wireRoutes(rc.children.routes)
		w.Children = &children
	}
	return w
}

func wireRoutes(routes []*RouteConfig) []wireRoute {
	out := make([]wireRoute, 0, len(routes))
	for _, rc := range routes {
		out = append(out, rc.wire())
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (rc *RouteConfig) MarshalJSON() ([]byte, error) {
	return marshal(rc.wire())
}

// Encode writes routes as a JSON array to w, followed by a newline.
// An empty indent writes compact JSON.
func Encode(w io.Writer, routes []*RouteConfig, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(wireRoutes(routes))
}

// Marshal returns the compact JSON document for routes.
func Marshal(routes []*RouteConfig) ([]byte, error) {
	return marshal(wireRoutes(routes))
}

// MarshalIndent returns the JSON document for routes, indented with indent and
// terminated by a newline.
func MarshalIndent(routes []*RouteConfig, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, routes, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
