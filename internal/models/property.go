package models

// Owner is the producer summary embedded in a property
type Owner struct {
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

// Property is a land parcel as returned by the registry backend
type Property struct {
	ID                      int64          `json:"id"`
	IDProducer              int64          `json:"idProducer"`
	Producer                *Owner         `json:"producer,omitempty"`
	ProductiveAreaName      string         `json:"productiveAreaName"`
	TotalArea               *float64       `json:"totalArea,omitempty"`
	AgriculturalArea        *float64       `json:"agriculturalArea,omitempty"`
	ProductiveBackyardArea  *float64       `json:"productiveBackyardArea,omitempty"`
	BackyardType            string         `json:"backyardType,omitempty"`
	Latitude                string         `json:"latitude,omitempty"`
	Longitude               string         `json:"longitude,omitempty"`
	TimeOnProperty          string         `json:"timeOnProperty,omitempty"`
	HasElectricity          bool           `json:"hasElectricity"`
	ElectricityType         string         `json:"electricityType,omitempty"`
	HasBathroom             bool           `json:"hasBathroom"`
	HasSepticTank           bool           `json:"hasSepticTank"`
	HasGreyWaterTreatment   bool           `json:"hasGreyWaterTreatment"`
	GreyWaterTreatmentDesc  string         `json:"greyWaterTreatmentDesc,omitempty"`
	UsesWaterTruck          bool           `json:"usesWaterTruck"`
	CulturalTradition       string         `json:"culturalTradition,omitempty"`
	HasSchoolInCommunity    bool           `json:"hasSchoolInCommunity"`
	SchoolTransport         string         `json:"schoolTransport,omitempty"`
	VisitedByHealthAgent    bool           `json:"visitedByHealthAgent"`
	VisitedByEndemicAgent   bool           `json:"visitedByEndemicAgent"`
	HasIrrigation           bool           `json:"hasIrrigation"`
	HasOrganicCertification bool           `json:"hasOrganicCertification"`
	ProcessingDistance      string         `json:"processingDistance,omitempty"`
	AccessedCredit          bool           `json:"accessedCredit"`
	CreditDetail            string         `json:"creditDetail,omitempty"`
	AccessedMarket          bool           `json:"accessedMarket"`
	MarketDetail            string         `json:"marketDetail,omitempty"`
	HasFinancialManagement  bool           `json:"hasFinancialManagement"`
	FinancialManagementDesc string         `json:"financialManagementDesc,omitempty"`
	IncomeRange             string         `json:"incomeRange,omitempty"`
	ReceivesTechSupport     bool           `json:"receivesTechSupport"`
	TechSupportFrequency    string         `json:"techSupportFrequency,omitempty"`
	TrainingAvailability    bool           `json:"trainingAvailability"`
	TechnicalReport         string         `json:"technicalReport,omitempty"`
	Items                   []PropertyItem `json:"items,omitempty"`
}

// GetID returns the property id
func (p Property) GetID() int64 { return p.ID }

// PropertyItem links a property to a catalog domain entry
type PropertyItem struct {
	ID            int64    `json:"id,omitempty"`
	IDProperty    int64    `json:"idProperty,omitempty"`
	IDDomain      int64    `json:"idDomain"`
	Quantity      *float64 `json:"quantity,omitempty"`
	IsFunctioning bool     `json:"isFunctioning"`
	Complement    string   `json:"complement,omitempty"`
}

// GetID returns the item id
func (i PropertyItem) GetID() int64 { return i.ID }

// PropertyPayload is the property body sent on create and update. Nil
// pointers travel as JSON null.
type PropertyPayload struct {
	IDProducer              int64                 `json:"idProducer"`
	ProductiveAreaName      *string               `json:"productiveAreaName"`
	TotalArea               *float64              `json:"totalArea"`
	AgriculturalArea        *float64              `json:"agriculturalArea"`
	ProductiveBackyardArea  *float64              `json:"productiveBackyardArea"`
	BackyardType            *string               `json:"backyardType"`
	Latitude                *string               `json:"latitude"`
	Longitude               *string               `json:"longitude"`
	TimeOnProperty          *string               `json:"timeOnProperty"`
	HasElectricity          bool                  `json:"hasElectricity"`
	ElectricityType         *string               `json:"electricityType"`
	HasBathroom             bool                  `json:"hasBathroom"`
	HasSepticTank           bool                  `json:"hasSepticTank"`
	HasGreyWaterTreatment   bool                  `json:"hasGreyWaterTreatment"`
	GreyWaterTreatmentDesc  *string               `json:"greyWaterTreatmentDesc"`
	UsesWaterTruck          bool                  `json:"usesWaterTruck"`
	CulturalTradition       *string               `json:"culturalTradition"`
	HasSchoolInCommunity    bool                  `json:"hasSchoolInCommunity"`
	SchoolTransport         *string               `json:"schoolTransport"`
	VisitedByHealthAgent    bool                  `json:"visitedByHealthAgent"`
	VisitedByEndemicAgent   bool                  `json:"visitedByEndemicAgent"`
	HasIrrigation           bool                  `json:"hasIrrigation"`
	HasOrganicCertification bool                  `json:"hasOrganicCertification"`
	ProcessingDistance      *string               `json:"processingDistance"`
	AccessedCredit          bool                  `json:"accessedCredit"`
	CreditDetail            *string               `json:"creditDetail"`
	AccessedMarket          bool                  `json:"accessedMarket"`
	MarketDetail            *string               `json:"marketDetail"`
	HasFinancialManagement  bool                  `json:"hasFinancialManagement"`
	FinancialManagementDesc *string               `json:"financialManagementDesc"`
	IncomeRange             *string               `json:"incomeRange"`
	ReceivesTechSupport     bool                  `json:"receivesTechSupport"`
	TechSupportFrequency    *string               `json:"techSupportFrequency"`
	TrainingAvailability    bool                  `json:"trainingAvailability"`
	TechnicalReport         *string               `json:"technicalReport"`
	Items                   []PropertyItemPayload `json:"items,omitempty"`
}

// PropertyItemPayload is one inventory row on the wire. ID is only sent for
// rows that already exist.
type PropertyItemPayload struct {
	ID            int64    `json:"id,omitempty"`
	IDProperty    int64    `json:"idProperty,omitempty"`
	IDDomain      int64    `json:"idDomain"`
	Complement    *string  `json:"complement"`
	Quantity      *float64 `json:"quantity"`
	IsFunctioning bool     `json:"isFunctioning"`
}
