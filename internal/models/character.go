package models

// Role classifies a character's part in the case.
type Role string

const (
	RoleVictim  Role = "victim"
	RoleSuspect Role = "suspect"
	RoleWitness Role = "witness"
	RoleClient  Role = "client"
	RoleOther   Role = "other"
)

// ComponentType tags the data components a character owns, e.g. their social
// media feed or phone log. The UI renders one button per component.
type ComponentType string

const (
	ComponentSocialMedia  ComponentType = "social_media"
	ComponentPhoneLog     ComponentType = "phone_log"
	ComponentCCTV         ComponentType = "cctv"
	ComponentPurchaseInfo ComponentType = "purchase_info"
	ComponentInteraction  ComponentType = "interaction"
	ComponentDialogue     ComponentType = "dialogue"
	ComponentFile         ComponentType = "file"
)

// DataComponent is an opaque tagged payload owned by a character. The engine
// only routes it; the content shape is a UI concern.
type DataComponent struct {
	Type    ComponentType
	Title   string
	Content string
}

// PhysicalCharacteristics describe a suspect for booking photo generation.
type PhysicalCharacteristics struct {
	Height   string
	Weight   string
	Eyes     string
	Hair     string
	Features string
}

// Character is a person in the story: victim, suspect, witness, or otherwise.
type Character struct {
	ID         string
	Name       string
	Age        int
	Occupation string
	Role       Role
	// IsSuspect is flipped by the player when they start suspecting someone,
	// independent of the authored Role.
	IsSuspect bool
	Bio       string
	// Statement is the character's initial statement to the police. A non-empty
	// statement is promoted to a Testimony when the cartridge loads.
	Statement               string
	PhysicalCharacteristics *PhysicalCharacteristics
	Components              []DataComponent
	TestimonyIDs            []string
	RelatedPeople           []string
	KnownLocations          []string
	AssociatedObjects       []string
}
