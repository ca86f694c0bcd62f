package listing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadPropertiesWithOwners(t *testing.T) {
	props := &fakeSource[models.Property]{items: []models.Property{
		{ID: 10, IDProducer: 1, ProductiveAreaName: "Sítio A"},
		{ID: 11, IDProducer: 2, ProductiveAreaName: "Sítio B", Producer: &models.Owner{Name: "Embutido"}},
		{ID: 12, IDProducer: 99, ProductiveAreaName: "Sítio C"},
	}}
	prods := &fakeSource[models.Producer]{items: producers()}

	joined, err := LoadPropertiesWithOwners(context.Background(), props, prods)
	require.NoError(t, err)
	require.Len(t, joined, 3)

	require.NotNil(t, joined[0].Producer)
	assert.Equal(t, "Maria da Silva", joined[0].Producer.Name)
	assert.Equal(t, "Embutido", joined[1].Producer.Name, "embedded owner wins")
	assert.Nil(t, joined[2].Producer)
}

func TestLoadPropertiesWithOwners_FailureIsNotPartial(t *testing.T) {
	tests := []struct {
		name  string
		props *fakeSource[models.Property]
		prods *fakeSource[models.Producer]
		want  string
	}{
		{
			name:  "producers fail",
			props: &fakeSource[models.Property]{items: []models.Property{{ID: 1}}},
			prods: &fakeSource[models.Producer]{err: errors.New("boom")},
			want:  "failed to load producers",
		},
		{
			name:  "properties fail",
			props: &fakeSource[models.Property]{err: errors.New("boom")},
			prods: &fakeSource[models.Producer]{items: producers()},
			want:  "failed to load properties",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			joined, err := LoadPropertiesWithOwners(context.Background(), tt.props, tt.prods)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Nil(t, joined)
		})
	}
}

func TestFilterProperties(t *testing.T) {
	props := JoinOwners([]models.Property{
		{ID: 10, IDProducer: 1, ProductiveAreaName: "Sítio Boa Vista"},
		{ID: 11, IDProducer: 2, ProductiveAreaName: "Chácara"},
	}, producers())

	got := Filter(props, "josé", PropertyName, PropertyOwner)
	require.Len(t, got, 1)
	assert.Equal(t, int64(11), got[0].ID)
}

func TestExportProducers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportProducers(&buf, producers()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Produtores")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Nome", rows[0][1])
	assert.Equal(t, "Maria da Silva", rows[1][1])
	assert.Equal(t, "529.982.247-25", rows[1][2])
}

func TestExportProperties(t *testing.T) {
	area := 2.5
	var buf bytes.Buffer
	require.NoError(t, ExportProperties(&buf, []models.Property{
		{ID: 10, ProductiveAreaName: "Sítio", TotalArea: &area, Producer: &models.Owner{Name: "Maria", CPF: "52998224725"}},
	}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Propriedades")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"10", "Sítio", "Maria", "529.982.247-25", "2.5", "", "", "", "", "0"}, rows[1])
}

func TestWithOwners(t *testing.T) {
	props := &fakeSource[models.Property]{items: []models.Property{{ID: 10, IDProducer: 2}}}
	prods := &fakeSource[models.Producer]{items: producers()}

	v := NewView[models.Property]("properties", newBrowser(), 0)
	require.NoError(t, v.Load(context.Background(), WithOwners(props, prods)))
	require.Len(t, v.Items(), 1)
	require.NotNil(t, v.Items()[0].Producer)
	assert.Equal(t, "José Pereira", v.Items()[0].Producer.Name)
	assert.Equal(t, 1, props.calls)
	assert.Equal(t, 1, prods.calls)
}
