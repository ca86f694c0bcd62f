package models

// Kinship values accepted for family members
const (
	KinshipSpouse      = "CONJUGE"
	KinshipChild       = "FILHO(A)"
	KinshipFather      = "PAI"
	KinshipMother      = "MAE"
	KinshipSibling     = "IRMAO(A)"
	KinshipGrandchild  = "NETO(A)"
	KinshipGrandparent = "AVO"
	KinshipOther       = "OUTRO"
)

// Kinships lists the kinship options in display order
var Kinships = []string{
	KinshipSpouse, KinshipChild, KinshipFather, KinshipMother,
	KinshipSibling, KinshipGrandchild, KinshipGrandparent, KinshipOther,
}

// Sexes lists the sex options for family members
var Sexes = []string{"MASCULINO", "FEMININO", "OUTRO"}

// Producer is a rural producer as returned by the registry backend
type Producer struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	SocialName      string         `json:"socialName,omitempty"`
	Nickname        string         `json:"nickname,omitempty"`
	DateBirth       string         `json:"dateBirth,omitempty"`
	CPF             string         `json:"cpf"`
	RG              string         `json:"rg,omitempty"`
	CivilState      string         `json:"civilState,omitempty"`
	ColorRace       string         `json:"colorRace,omitempty"`
	Ethnicity       string         `json:"ethnicity,omitempty"`
	Naturalness     string         `json:"naturalness,omitempty"`
	Contact         string         `json:"contact,omitempty"`
	PersonalAddress string         `json:"personalAddress,omitempty"`
	Community       string         `json:"community,omitempty"`
	Municipality    string         `json:"municipality,omitempty"`
	State           string         `json:"state,omitempty"`
	CadUnique       string         `json:"cadUnique,omitempty"`
	NIS             string         `json:"nis,omitempty"`
	CAF             string         `json:"caf,omitempty"`
	Schooling       string         `json:"schooling,omitempty"`
	IsRetired       bool           `json:"isRetired"`
	IsPcd           bool           `json:"isPcd"`
	PcdDescription  string         `json:"pcdDescription,omitempty"`
	FamilyMembers   []FamilyMember `json:"familyMembers,omitempty"`
	CreatedAt       string         `json:"createdAt,omitempty"`
}

// GetID returns the producer id
func (p Producer) GetID() int64 { return p.ID }

// FamilyMember is a member of a producer's household
type FamilyMember struct {
	ID             int64  `json:"id,omitempty"`
	IDProducer     int64  `json:"idProducer"`
	Name           string `json:"name"`
	Kinship        string `json:"kinship"`
	Age            *int   `json:"age,omitempty"`
	Sex            string `json:"sex,omitempty"`
	ColorRace      string `json:"colorRace,omitempty"`
	Schooling      string `json:"schooling,omitempty"`
	IsPcd          bool   `json:"isPcd"`
	PcdDescription string `json:"pcdDescription,omitempty"`
	Observation    string `json:"observation,omitempty"`
}

// GetID returns the family member id
func (m FamilyMember) GetID() int64 { return m.ID }

// ProducerPayload is the producer body sent on create and update. Nil
// pointers travel as JSON null.
type ProducerPayload struct {
	Name            string  `json:"name"`
	SocialName      *string `json:"socialName"`
	Nickname        *string `json:"nickname"`
	DateBirth       *string `json:"dateBirth"`
	CPF             string  `json:"cpf"`
	RG              *string `json:"rg"`
	CivilState      *string `json:"civilState"`
	ColorRace       *string `json:"colorRace"`
	Ethnicity       *string `json:"ethnicity"`
	Naturalness     *string `json:"naturalness"`
	Contact         string  `json:"contact"`
	PersonalAddress *string `json:"personalAddress"`
	Community       *string `json:"community"`
	Municipality    *string `json:"municipality"`
	State           *string `json:"state"`
	CadUnique       *string `json:"cadUnique"`
	NIS             *string `json:"nis"`
	CAF             *string `json:"caf"`
	Schooling       *string `json:"schooling"`
	IsRetired       bool    `json:"isRetired"`
	IsPcd           bool    `json:"isPcd"`
	PcdDescription  *string `json:"pcdDescription"`
}

// FamilyMemberPayload is the family member body sent to the flat endpoint.
// Empty optional fields are omitted rather than nulled.
type FamilyMemberPayload struct {
	IDProducer     int64  `json:"idProducer"`
	Name           string `json:"name"`
	Kinship        string `json:"kinship"`
	Age            *int   `json:"age,omitempty"`
	Sex            string `json:"sex,omitempty"`
	ColorRace      string `json:"colorRace,omitempty"`
	Schooling      string `json:"schooling,omitempty"`
	IsPcd          bool   `json:"isPcd"`
	PcdDescription string `json:"pcdDescription"`
	Observation    string `json:"observation"`
}
