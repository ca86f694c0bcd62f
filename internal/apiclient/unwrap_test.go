package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestUnwrapList(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNames []string
		wantTotal int
		wantMeta  bool
	}{
		{
			name:      "paginated",
			body:      `{"data":[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":3,"name":"c"}],"meta":{"total":40,"page":1,"pageSize":3}}`,
			wantNames: []string{"a", "b", "c"},
			wantTotal: 40,
			wantMeta:  true,
		},
		{name: "bare array", body: `[{"id":1,"name":"x"},{"id":2,"name":"y"}]`, wantNames: []string{"x", "y"}},
		{name: "empty array", body: `[]`, wantNames: []string{}},
		{name: "null", body: `null`, wantNames: []string{}},
		{name: "object without data", body: `{"items":[{"id":1}]}`, wantNames: []string{}},
		{name: "data not an array", body: `{"data":{"id":1}}`, wantNames: []string{}},
		{name: "scalar", body: `"ok"`, wantNames: []string{}},
		{name: "empty body", body: ``, wantNames: []string{}},
		{name: "invalid json", body: `{"data":[`, wantNames: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := UnwrapList[item]([]byte(tt.body))
			require.NotNil(t, page.Items)

			names := make([]string, 0, len(page.Items))
			for _, it := range page.Items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, len(tt.wantNames), ArrayLength([]byte(tt.body)))

			if tt.wantMeta {
				require.NotNil(t, page.Meta)
				assert.Equal(t, tt.wantTotal, page.Meta.Total)
			} else {
				assert.Nil(t, page.Meta)
			}
		})
	}
}

func TestUnwrapList_SkipsItemsThatDoNotDecode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNames []string
	}{
		{name: "one drifted item", body: `{"data":[{"id":"not-a-number","name":"a"},{"id":2,"name":"b"}]}`, wantNames: []string{"b"}},
		{name: "bare array", body: `[{"id":1,"name":"x"},{"id":2,"name":7}]`, wantNames: []string{"x"}},
		{name: "every item drifted", body: `[{"id":"x"}]`, wantNames: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := UnwrapList[item]([]byte(tt.body))
			require.NotNil(t, page.Items)
			names := make([]string, 0, len(page.Items))
			for _, it := range page.Items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestMetaTotal(t *testing.T) {
	assert.Equal(t, 12, MetaTotal([]byte(`{"data":[],"meta":{"total":12}}`)))
	assert.Equal(t, 0, MetaTotal([]byte(`[]`)))
	assert.Equal(t, 0, MetaTotal(nil))
}
