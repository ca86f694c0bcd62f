package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
)

const itemsField = "items"

// PropertyForm holds the property form exactly as typed
type PropertyForm struct {
	IDProducer              string `form:"idProducer"`
	ProductiveAreaName      string `form:"productiveAreaName"`
	TotalArea               string `form:"totalArea"`
	AgriculturalArea        string `form:"agriculturalArea"`
	ProductiveBackyardArea  string `form:"productiveBackyardArea"`
	BackyardType            string `form:"backyardType"`
	Latitude                string `form:"latitude"`
	Longitude               string `form:"longitude"`
	TimeOnProperty          string `form:"timeOnProperty"`
	HasElectricity          bool   `form:"hasElectricity"`
	ElectricityType         string `form:"electricityType"`
	HasBathroom             bool   `form:"hasBathroom"`
	HasSepticTank           bool   `form:"hasSepticTank"`
	HasGreyWaterTreatment   bool   `form:"hasGreyWaterTreatment"`
	GreyWaterTreatmentDesc  string `form:"greyWaterTreatmentDesc"`
	UsesWaterTruck          bool   `form:"usesWaterTruck"`
	CulturalTradition       string `form:"culturalTradition"`
	HasSchoolInCommunity    bool   `form:"hasSchoolInCommunity"`
	SchoolTransport         string `form:"schoolTransport"`
	VisitedByHealthAgent    bool   `form:"visitedByHealthAgent"`
	VisitedByEndemicAgent   bool   `form:"visitedByEndemicAgent"`
	HasIrrigation           bool   `form:"hasIrrigation"`
	HasOrganicCertification bool   `form:"hasOrganicCertification"`
	ProcessingDistance      string `form:"processingDistance"`
	AccessedCredit          bool   `form:"accessedCredit"`
	CreditDetail            string `form:"creditDetail"`
	AccessedMarket          bool   `form:"accessedMarket"`
	MarketDetail            string `form:"marketDetail"`
	HasFinancialManagement  bool   `form:"hasFinancialManagement"`
	FinancialManagementDesc string `form:"financialManagementDesc"`
	IncomeRange             string `form:"incomeRange"`
	ReceivesTechSupport     bool   `form:"receivesTechSupport"`
	TechSupportFrequency    string `form:"techSupportFrequency"`
	TrainingAvailability    bool   `form:"trainingAvailability"`
	TechnicalReport         string `form:"technicalReport"`

	Items []PropertyItemRow `form:"-"`
}

// PropertyItemRow is one inventory row of the property form
type PropertyItemRow struct {
	ID            int64  `form:"id"`
	IDDomain      string `form:"idDomain"`
	Quantity      string `form:"quantity"`
	IsFunctioning bool   `form:"isFunctioning"`
	Complement    string `form:"complement"`
}

// IncomeRanges lists the income bracket options
var IncomeRanges = []string{"Até 1 SM", "1 a 3 SM", "3 a 5 SM", "Acima de 5 SM"}

// ElectricityTypes lists the electricity supply options
var ElectricityTypes = []string{"Monofásica", "Bifásica", "Trifásica"}

// gatedField pairs a free-text detail with the flag that asks for it
type gatedField struct {
	flag    bool
	field   string
	value   string
	message string
}

func (f *PropertyForm) gatedFields() []gatedField {
	return []gatedField{
		{f.HasElectricity, "electricityType", f.ElectricityType, "Informe o tipo de energia"},
		{f.HasGreyWaterTreatment, "greyWaterTreatmentDesc", f.GreyWaterTreatmentDesc, "Descreva o tratamento"},
		{f.HasSchoolInCommunity, "schoolTransport", f.SchoolTransport, "Informe o transporte escolar"},
		{f.AccessedCredit, "creditDetail", f.CreditDetail, "Informe o crédito acessado"},
		{f.AccessedMarket, "marketDetail", f.MarketDetail, "Informe o mercado acessado"},
		{f.HasFinancialManagement, "financialManagementDesc", f.FinancialManagementDesc, "Descreva a gestão financeira"},
		{f.ReceivesTechSupport, "techSupportFrequency", f.TechSupportFrequency, "Informe a frequência"},
	}
}

// NewPropertyForm returns an empty property form
func NewPropertyForm() PropertyForm {
	return PropertyForm{}
}

// PropertyFormFrom fills the form from a fetched property
func PropertyFormFrom(p *models.Property) PropertyForm {
	f := PropertyForm{
		ProductiveAreaName:      p.ProductiveAreaName,
		TotalArea:               utils.FormatOptionalFloat(p.TotalArea),
		AgriculturalArea:        utils.FormatOptionalFloat(p.AgriculturalArea),
		ProductiveBackyardArea:  utils.FormatOptionalFloat(p.ProductiveBackyardArea),
		BackyardType:            p.BackyardType,
		Latitude:                p.Latitude,
		Longitude:               p.Longitude,
		TimeOnProperty:          p.TimeOnProperty,
		HasElectricity:          p.HasElectricity,
		ElectricityType:         p.ElectricityType,
		HasBathroom:             p.HasBathroom,
		HasSepticTank:           p.HasSepticTank,
		HasGreyWaterTreatment:   p.HasGreyWaterTreatment,
		GreyWaterTreatmentDesc:  p.GreyWaterTreatmentDesc,
		UsesWaterTruck:          p.UsesWaterTruck,
		CulturalTradition:       p.CulturalTradition,
		HasSchoolInCommunity:    p.HasSchoolInCommunity,
		SchoolTransport:         p.SchoolTransport,
		VisitedByHealthAgent:    p.VisitedByHealthAgent,
		VisitedByEndemicAgent:   p.VisitedByEndemicAgent,
		HasIrrigation:           p.HasIrrigation,
		HasOrganicCertification: p.HasOrganicCertification,
		ProcessingDistance:      p.ProcessingDistance,
		AccessedCredit:          p.AccessedCredit,
		CreditDetail:            p.CreditDetail,
		AccessedMarket:          p.AccessedMarket,
		MarketDetail:            p.MarketDetail,
		HasFinancialManagement:  p.HasFinancialManagement,
		FinancialManagementDesc: p.FinancialManagementDesc,
		IncomeRange:             p.IncomeRange,
		ReceivesTechSupport:     p.ReceivesTechSupport,
		TechSupportFrequency:    p.TechSupportFrequency,
		TrainingAvailability:    p.TrainingAvailability,
		TechnicalReport:         p.TechnicalReport,
	}
	if p.IDProducer > 0 {
		f.IDProducer = strconv.FormatInt(p.IDProducer, 10)
	}
	for _, it := range p.Items {
		quantity := utils.FormatOptionalFloat(it.Quantity)
		if quantity == "" {
			quantity = "1"
		}
		f.Items = append(f.Items, PropertyItemRow{
			ID:            it.ID,
			IDDomain:      strconv.FormatInt(it.IDDomain, 10),
			Quantity:      quantity,
			IsFunctioning: it.IsFunctioning,
			Complement:    it.Complement,
		})
	}
	return f
}

// ParsePropertyForm reads a posted property form, inventory rows included
func ParsePropertyForm(values url.Values) (PropertyForm, error) {
	var f PropertyForm
	if err := bindFlat(values, &f); err != nil {
		return f, err
	}
	rows, err := bindRows[PropertyItemRow](values, itemsField)
	if err != nil {
		return f, err
	}
	f.Items = rows
	return f, nil
}

// ItemIDs returns the ids of the rows that already exist
func (f *PropertyForm) ItemIDs() []int64 {
	ids := make([]int64, 0, len(f.Items))
	for _, it := range f.Items {
		if it.ID > 0 {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// AddItem appends an inventory row with quantity 1
func (f *PropertyForm) AddItem() {
	f.Items = append(f.Items, PropertyItemRow{Quantity: "1", IsFunctioning: true})
}

// RemoveItem drops the inventory row at i
func (f *PropertyForm) RemoveItem(i int) {
	f.Items = removeAt(f.Items, i)
}

// Apply performs a row edit action
func (f *PropertyForm) Apply(a Action) {
	switch a.Kind {
	case ActionAddRow:
		f.AddItem()
	case ActionRemoveRow:
		f.RemoveItem(a.Index)
	}
}

// Validate checks the form before any backend call. Detail fields are only
// required when their flag is set.
func (f *PropertyForm) Validate() *utils.ValidationResult {
	result := utils.NewValidationResult()

	if _, err := utils.ParseID(f.IDProducer); err != nil {
		result.AddError("idProducer", "Selecione um produtor")
	}
	result.MinLength("productiveAreaName", f.ProductiveAreaName, 3, "Nome obrigatório")

	for field, value := range map[string]string{
		"totalArea":              f.TotalArea,
		"agriculturalArea":       f.AgriculturalArea,
		"productiveBackyardArea": f.ProductiveBackyardArea,
	} {
		if v, err := utils.ParseOptionalFloat(value); err != nil || (v != nil && *v < 0) {
			result.AddError(field, "Informe um número válido")
		}
	}

	if strings.TrimSpace(f.Latitude) != "" && !utils.IsLatitude(f.Latitude) {
		result.AddError("latitude", "Latitude inválida")
	}
	if strings.TrimSpace(f.Longitude) != "" && !utils.IsLongitude(f.Longitude) {
		result.AddError("longitude", "Longitude inválida")
	}

	for _, g := range f.gatedFields() {
		if g.flag {
			result.Require(g.field, g.value, g.message)
		}
	}

	for i, it := range f.Items {
		if _, err := utils.ParseID(it.IDDomain); err != nil {
			result.AddError(RowField(itemsField, i, "idDomain"), "Selecione o item")
		}
		if q, err := utils.ParseOptionalFloat(it.Quantity); err != nil || (q != nil && *q < 0) {
			result.AddError(RowField(itemsField, i, "quantity"), "Quantidade inválida")
		}
	}
	return result
}

// Payload converts the form to the backend body. With nested set the
// inventory rows travel inside it; otherwise they are reconciled through
// the flat item endpoint and left out.
func (f *PropertyForm) Payload(nested bool) (models.PropertyPayload, error) {
	idProducer, err := utils.ParseID(f.IDProducer)
	if err != nil {
		return models.PropertyPayload{}, err
	}
	totalArea, err := optionalNumber(f.TotalArea)
	if err != nil {
		return models.PropertyPayload{}, err
	}
	agriculturalArea, err := optionalNumber(f.AgriculturalArea)
	if err != nil {
		return models.PropertyPayload{}, err
	}
	backyardArea, err := optionalNumber(f.ProductiveBackyardArea)
	if err != nil {
		return models.PropertyPayload{}, err
	}

	p := models.PropertyPayload{
		IDProducer:              idProducer,
		ProductiveAreaName:      utils.NullIfEmpty(f.ProductiveAreaName),
		TotalArea:               totalArea,
		AgriculturalArea:        agriculturalArea,
		ProductiveBackyardArea:  backyardArea,
		BackyardType:            utils.NullIfEmpty(f.BackyardType),
		Latitude:                utils.NullIfEmpty(f.Latitude),
		Longitude:               utils.NullIfEmpty(f.Longitude),
		TimeOnProperty:          utils.NullIfEmpty(f.TimeOnProperty),
		HasElectricity:          f.HasElectricity,
		ElectricityType:         utils.NullIfEmpty(f.ElectricityType),
		HasBathroom:             f.HasBathroom,
		HasSepticTank:           f.HasSepticTank,
		HasGreyWaterTreatment:   f.HasGreyWaterTreatment,
		GreyWaterTreatmentDesc:  utils.NullIfEmpty(f.GreyWaterTreatmentDesc),
		UsesWaterTruck:          f.UsesWaterTruck,
		CulturalTradition:       utils.NullIfEmpty(f.CulturalTradition),
		HasSchoolInCommunity:    f.HasSchoolInCommunity,
		SchoolTransport:         utils.NullIfEmpty(f.SchoolTransport),
		VisitedByHealthAgent:    f.VisitedByHealthAgent,
		VisitedByEndemicAgent:   f.VisitedByEndemicAgent,
		HasIrrigation:           f.HasIrrigation,
		HasOrganicCertification: f.HasOrganicCertification,
		ProcessingDistance:      utils.NullIfEmpty(f.ProcessingDistance),
		AccessedCredit:          f.AccessedCredit,
		CreditDetail:            utils.NullIfEmpty(f.CreditDetail),
		AccessedMarket:          f.AccessedMarket,
		MarketDetail:            utils.NullIfEmpty(f.MarketDetail),
		HasFinancialManagement:  f.HasFinancialManagement,
		FinancialManagementDesc: utils.NullIfEmpty(f.FinancialManagementDesc),
		IncomeRange:             utils.NullIfEmpty(f.IncomeRange),
		ReceivesTechSupport:     f.ReceivesTechSupport,
		TechSupportFrequency:    utils.NullIfEmpty(f.TechSupportFrequency),
		TrainingAvailability:    f.TrainingAvailability,
		TechnicalReport:         utils.NullIfEmpty(f.TechnicalReport),
	}

	if nested {
		p.Items = make([]models.PropertyItemPayload, 0, len(f.Items))
		for _, it := range f.Items {
			item, err := it.Payload(0)
			if err != nil {
				return models.PropertyPayload{}, err
			}
			p.Items = append(p.Items, item)
		}
	}
	return p, nil
}

// Payload converts the row to its wire form. propertyID is only set when
// the row goes to the flat item endpoint.
func (it PropertyItemRow) Payload(propertyID int64) (models.PropertyItemPayload, error) {
	idDomain, err := utils.ParseID(it.IDDomain)
	if err != nil {
		return models.PropertyItemPayload{}, err
	}
	quantity, err := optionalNumber(it.Quantity)
	if err != nil {
		return models.PropertyItemPayload{}, err
	}
	return models.PropertyItemPayload{
		ID:            it.ID,
		IDProperty:    propertyID,
		IDDomain:      idDomain,
		Complement:    utils.NullIfEmpty(it.Complement),
		Quantity:      quantity,
		IsFunctioning: it.IsFunctioning,
	}, nil
}

// ItemRows turns the inventory rows into reconcile rows for propertyID
func (f *PropertyForm) ItemRows(propertyID int64) ([]ChildRow, error) {
	if propertyID <= 0 {
		return nil, models.ErrMissingParentID
	}
	rows := make([]ChildRow, 0, len(f.Items))
	for _, it := range f.Items {
		p, err := it.Payload(propertyID)
		if err != nil {
			return nil, err
		}
		p.ID = 0
		rows = append(rows, ChildRow{ID: it.ID, Payload: p})
	}
	return rows, nil
}

// optionalNumber parses a number input. Blank and zero both travel as
// null, matching what the registry stores for "not informed".
func optionalNumber(s string) (*float64, error) {
	v, err := utils.ParseOptionalFloat(s)
	if err != nil || v == nil || *v == 0 {
		return nil, err
	}
	return v, nil
}
