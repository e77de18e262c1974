package upstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func Test_UnmarshalList(t *testing.T) {
	want := []item{{ID: 1, Name: "L1"}, {ID: 2, Name: "L2"}}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "results envelope", body: `{"results": [{"id":1,"name":"L1"},{"id":2,"name":"L2"}]}`},
		{name: "entity plural envelope", body: `{"levels": [{"id":1,"name":"L1"},{"id":2,"name":"L2"}]}`},
		{name: "bare array", body: `[{"id":1,"name":"L1"},{"id":2,"name":"L2"}]`},
		{name: "null results falls through to plural", body: `{"results": null, "levels": [{"id":1,"name":"L1"},{"id":2,"name":"L2"}]}`},
		{name: "no known shape", body: `{"data": []}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []item
			err := UnmarshalList([]byte(tt.body), &got, "results", "levels")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func Test_UnmarshalObject(t *testing.T) {
	want := item{ID: 7, Name: "GLSI"}

	tests := []struct {
		name string
		body string
	}{
		{name: "entity envelope", body: `{"major": {"id":7,"name":"GLSI"}}`},
		{name: "bare object", body: `{"id":7,"name":"GLSI"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got item
			require.NoError(t, UnmarshalObject([]byte(tt.body), &got, "major"))
			assert.Equal(t, want, got)
		})
	}
}

func Test_UnmarshalPage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantMeta PageMeta
		wantLen  int
	}{
		{
			name:     "full meta",
			body:     `{"results":[{"id":1}],"total":41,"total_pages":3,"page":2,"page_size":20}`,
			wantMeta: PageMeta{Page: 2, PageSize: 20, Total: 41, TotalPages: 3},
			wantLen:  1,
		},
		{
			name:     "count and num_pages aliases",
			body:     `{"results":[{"id":1},{"id":2}],"count":12,"num_pages":6,"current_page":3}`,
			wantMeta: PageMeta{Page: 3, Total: 12, TotalPages: 6},
			wantLen:  2,
		},
		{
			name:     "no meta defaults from items",
			body:     `{"results":[{"id":1},{"id":2},{"id":3}]}`,
			wantMeta: PageMeta{Page: 1, Total: 3, TotalPages: 1},
			wantLen:  3,
		},
		{
			name:     "bare array",
			body:     `[{"id":1},{"id":2}]`,
			wantMeta: PageMeta{Page: 1, Total: 2, TotalPages: 1},
			wantLen:  2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []item
			meta, err := UnmarshalPage([]byte(tt.body), &got, "results", "students")
			require.NoError(t, err)
			assert.Equal(t, tt.wantMeta, meta)
			assert.Len(t, got, tt.wantLen)
		})
	}
}
