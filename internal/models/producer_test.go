package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducerPayload_NilFieldsTravelAsNull(t *testing.T) {
	payload := ProducerPayload{Name: "Francisca", CPF: "52998224725", Contact: "88999998888"}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded, "socialName")
	assert.Nil(t, decoded["socialName"])
	assert.Nil(t, decoded["dateBirth"])
	assert.Equal(t, false, decoded["isPcd"])
}

func TestFamilyMemberPayload_OmitsEmptyOptionalFields(t *testing.T) {
	payload := FamilyMemberPayload{IDProducer: 9, Name: "José", Kinship: KinshipChild, PcdDescription: "Nenhuma"}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.NotContains(t, decoded, "age")
	assert.NotContains(t, decoded, "sex")
	assert.Equal(t, "Nenhuma", decoded["pcdDescription"])
	assert.Equal(t, "", decoded["observation"])
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleSuperAdmin.Valid())
	assert.False(t, Role("GUEST").Valid())
	assert.False(t, Role("").Valid())
}

func TestIsDomainGroup(t *testing.T) {
	for _, g := range DomainGroups {
		assert.True(t, IsDomainGroup(g), g)
	}
	assert.False(t, IsDomainGroup("FERRAMENTAS"))
	assert.False(t, IsDomainGroup("maquinas"))
}

func TestLoginResponse_BackendSpelling(t *testing.T) {
	var resp LoginResponse
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"primaryAcess":true,"accessToken":"tok"}`), &resp))

	assert.Equal(t, int64(7), resp.ID)
	assert.True(t, resp.PrimaryAcess)
	assert.Equal(t, "tok", resp.AccessToken)
}
