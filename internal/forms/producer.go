package forms

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
)

// Defaults of a new producer form
const (
	DefaultMunicipality = "Limoeiro do Norte"
	DefaultState        = "CE"
)

// Wire defaults of family member fields left empty
const (
	DefaultPcdDescription = "Nenhuma"
	DefaultObservation    = ""
)

const familyMembersField = "familyMembers"

// ProducerForm holds the producer form exactly as typed
type ProducerForm struct {
	Name            string `form:"name"`
	SocialName      string `form:"socialName"`
	Nickname        string `form:"nickname"`
	DateBirth       string `form:"dateBirth"`
	CPF             string `form:"cpf"`
	RG              string `form:"rg"`
	CivilState      string `form:"civilState"`
	ColorRace       string `form:"colorRace"`
	Ethnicity       string `form:"ethnicity"`
	Naturalness     string `form:"naturalness"`
	Contact         string `form:"contact"`
	PersonalAddress string `form:"personalAddress"`
	Community       string `form:"community"`
	Municipality    string `form:"municipality"`
	State           string `form:"state"`
	CadUnique       string `form:"cadUnique"`
	NIS             string `form:"nis"`
	CAF             string `form:"caf"`
	Schooling       string `form:"schooling"`
	IsRetired       bool   `form:"isRetired"`
	IsPcd           bool   `form:"isPcd"`
	PcdDescription  string `form:"pcdDescription"`

	FamilyMembers []FamilyMemberRow `form:"-"`
}

// FamilyMemberRow is one household row of the producer form. ID is zero
// for rows added in this edit.
type FamilyMemberRow struct {
	ID             int64  `form:"id"`
	Name           string `form:"name"`
	Kinship        string `form:"kinship"`
	Age            string `form:"age"`
	Sex            string `form:"sex"`
	ColorRace      string `form:"colorRace"`
	Schooling      string `form:"schooling"`
	IsPcd          bool   `form:"isPcd"`
	PcdDescription string `form:"pcdDescription"`
	Observation    string `form:"observation"`
}

// NewProducerForm returns an empty form with the regional defaults
func NewProducerForm() ProducerForm {
	return ProducerForm{Municipality: DefaultMunicipality, State: DefaultState}
}

// ProducerFormFrom fills the form from a fetched producer and its
// household
func ProducerFormFrom(p *models.Producer, members []models.FamilyMember) ProducerForm {
	f := ProducerForm{
		Name:            p.Name,
		SocialName:      p.SocialName,
		Nickname:        p.Nickname,
		DateBirth:       utils.TruncateDate(p.DateBirth),
		CPF:             utils.FormatCPF(p.CPF),
		RG:              p.RG,
		CivilState:      p.CivilState,
		ColorRace:       p.ColorRace,
		Ethnicity:       p.Ethnicity,
		Naturalness:     p.Naturalness,
		Contact:         utils.FormatPhone(p.Contact),
		PersonalAddress: p.PersonalAddress,
		Community:       p.Community,
		Municipality:    p.Municipality,
		State:           p.State,
		CadUnique:       p.CadUnique,
		NIS:             p.NIS,
		CAF:             p.CAF,
		Schooling:       p.Schooling,
		IsRetired:       p.IsRetired,
		IsPcd:           p.IsPcd,
		PcdDescription:  p.PcdDescription,
	}
	if f.Municipality == "" {
		f.Municipality = DefaultMunicipality
	}
	if f.State == "" {
		f.State = DefaultState
	}

	if members == nil {
		members = p.FamilyMembers
	}
	for _, m := range members {
		f.FamilyMembers = append(f.FamilyMembers, FamilyMemberRow{
			ID:             m.ID,
			Name:           m.Name,
			Kinship:        m.Kinship,
			Age:            utils.FormatOptionalInt(m.Age),
			Sex:            m.Sex,
			ColorRace:      m.ColorRace,
			Schooling:      m.Schooling,
			IsPcd:          m.IsPcd,
			PcdDescription: m.PcdDescription,
			Observation:    m.Observation,
		})
	}
	return f
}

// ParseProducerForm reads a posted producer form, household rows included
func ParseProducerForm(values url.Values) (ProducerForm, error) {
	var f ProducerForm
	if err := bindFlat(values, &f); err != nil {
		return f, err
	}
	rows, err := bindRows[FamilyMemberRow](values, familyMembersField)
	if err != nil {
		return f, err
	}
	f.FamilyMembers = rows
	return f, nil
}

// FamilyMemberIDs returns the ids of the rows that already exist
func (f *ProducerForm) FamilyMemberIDs() []int64 {
	ids := make([]int64, 0, len(f.FamilyMembers))
	for _, m := range f.FamilyMembers {
		if m.ID > 0 {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// AddFamilyMember appends an empty household row
func (f *ProducerForm) AddFamilyMember() {
	f.FamilyMembers = append(f.FamilyMembers, FamilyMemberRow{})
}

// RemoveFamilyMember drops the household row at i
func (f *ProducerForm) RemoveFamilyMember(i int) {
	f.FamilyMembers = removeAt(f.FamilyMembers, i)
}

// Apply performs a row edit action
func (f *ProducerForm) Apply(a Action) {
	switch a.Kind {
	case ActionAddRow:
		f.AddFamilyMember()
	case ActionRemoveRow:
		f.RemoveFamilyMember(a.Index)
	}
}

// Validate checks the form before any backend call
func (f *ProducerForm) Validate() *utils.ValidationResult {
	result := utils.NewValidationResult()

	result.MinLength("name", f.Name, 2, "Nome é obrigatório")

	switch cpf := utils.OnlyDigits(f.CPF); {
	case len(cpf) != 11:
		result.AddError("cpf", "CPF incompleto")
	case !utils.ValidateCPF(cpf):
		result.AddError("cpf", "CPF inválido")
	}

	switch contact := utils.OnlyDigits(f.Contact); {
	case len(contact) < 10 || len(contact) > 11:
		result.AddError("contact", "Telefone incompleto")
	case !utils.IsPossibleBRPhone(contact):
		result.AddError("contact", "Telefone inválido")
	}

	if _, err := utils.DateToTimestamp(f.DateBirth); err != nil {
		result.AddError("dateBirth", "Data de nascimento inválida")
	}

	if f.IsPcd {
		result.Require("pcdDescription", f.PcdDescription, "Descreva a deficiência")
	}

	for i, m := range f.FamilyMembers {
		m.validate(result, i)
	}
	return result
}

func (m FamilyMemberRow) validate(result *utils.ValidationResult, i int) {
	result.Require(RowField(familyMembersField, i, "name"), m.Name, "Nome é obrigatório")
	if !isKinship(m.Kinship) {
		result.AddError(RowField(familyMembersField, i, "kinship"), "Selecione o parentesco")
	}
	if age, err := utils.ParseOptionalInt(m.Age); err != nil || (age != nil && *age < 0) {
		result.AddError(RowField(familyMembersField, i, "age"), "Idade inválida")
	}
	if m.IsPcd {
		result.Require(RowField(familyMembersField, i, "pcdDescription"), m.PcdDescription, "Descreva a deficiência")
	}
}

func isKinship(k string) bool {
	for _, known := range models.Kinships {
		if k == known {
			return true
		}
	}
	return false
}

// Payload converts the form to the backend body. Household rows are not
// part of it; they are reconciled separately.
func (f *ProducerForm) Payload() (models.ProducerPayload, error) {
	dateBirth, err := utils.DateToTimestamp(f.DateBirth)
	if err != nil {
		return models.ProducerPayload{}, err
	}
	return models.ProducerPayload{
		Name:            strings.TrimSpace(f.Name),
		SocialName:      utils.NullIfEmpty(f.SocialName),
		Nickname:        utils.NullIfEmpty(f.Nickname),
		DateBirth:       dateBirth,
		CPF:             utils.OnlyDigits(f.CPF),
		RG:              utils.NullIfEmpty(f.RG),
		CivilState:      utils.NullIfEmpty(f.CivilState),
		ColorRace:       utils.NullIfEmpty(f.ColorRace),
		Ethnicity:       utils.NullIfEmpty(f.Ethnicity),
		Naturalness:     utils.NullIfEmpty(f.Naturalness),
		Contact:         utils.OnlyDigits(f.Contact),
		PersonalAddress: utils.NullIfEmpty(f.PersonalAddress),
		Community:       utils.NullIfEmpty(f.Community),
		Municipality:    utils.NullIfEmpty(f.Municipality),
		State:           utils.NullIfEmpty(f.State),
		CadUnique:       utils.NullIfEmpty(f.CadUnique),
		NIS:             utils.NullIfEmpty(f.NIS),
		CAF:             utils.NullIfEmpty(f.CAF),
		Schooling:       utils.NullIfEmpty(f.Schooling),
		IsRetired:       f.IsRetired,
		IsPcd:           f.IsPcd,
		PcdDescription:  utils.NullIfEmpty(f.PcdDescription),
	}, nil
}

// Payload converts the row to the flat endpoint body for producerID
func (m FamilyMemberRow) Payload(producerID int64) (models.FamilyMemberPayload, error) {
	if producerID <= 0 {
		return models.FamilyMemberPayload{}, models.ErrMissingParentID
	}
	age, err := utils.ParseOptionalInt(m.Age)
	if err != nil {
		return models.FamilyMemberPayload{}, fmt.Errorf("family member %q: %w", m.Name, err)
	}
	p := models.FamilyMemberPayload{
		IDProducer:     producerID,
		Name:           m.Name,
		Kinship:        m.Kinship,
		Age:            age,
		Sex:            m.Sex,
		ColorRace:      m.ColorRace,
		Schooling:      m.Schooling,
		IsPcd:          m.IsPcd,
		PcdDescription: m.PcdDescription,
		Observation:    m.Observation,
	}
	if strings.TrimSpace(p.PcdDescription) == "" {
		p.PcdDescription = DefaultPcdDescription
	}
	if strings.TrimSpace(p.Observation) == "" {
		p.Observation = DefaultObservation
	}
	return p, nil
}

// FamilyRows turns the household rows into reconcile rows for producerID
func (f *ProducerForm) FamilyRows(producerID int64) ([]ChildRow, error) {
	rows := make([]ChildRow, 0, len(f.FamilyMembers))
	for _, m := range f.FamilyMembers {
		p, err := m.Payload(producerID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ChildRow{ID: m.ID, Payload: p})
	}
	return rows, nil
}
