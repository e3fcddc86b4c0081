package main

import "testing"

func TestParseEvent(t *testing.T) {
	cases := map[string]string{
		"binary":     `{"bucket":"nada","name":"posts/p1.jpg","metadata":{"userId":"u1"}}`,
		"structured": `{"data":{"bucket":"nada","name":"posts/p1.jpg","metadata":{"userId":"u1"}}}`,
	}
	for name, body := range cases {
		ev, err := parseEvent([]byte(body))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if ev.Bucket != "nada" || ev.Name != "posts/p1.jpg" || ev.Metadata["userId"] != "u1" {
			t.Errorf("%s: parsed %+v", name, ev)
		}
	}

	if _, err := parseEvent([]byte("{")); err == nil {
		t.Error("expected error for malformed body")
	}
	ev, err := parseEvent([]byte(`{"data":{}}`))
	if err != nil || ev.Bucket != "" {
		t.Errorf("empty event: %+v, %v", ev, err)
	}
}
