package cartridge

// Raw document types mirror the cartridge JSON. Every field is optional;
// Transform fills in defaults so the rest of the engine never sees a partial
// entity. Unknown document fields are ignored.

type rawDocument struct {
	Metadata          rawMetadata                   `json:"metadata"`
	StoryInfo         rawStoryInfo                  `json:"storyInfo"`
	IntroSlideshow    []rawSlide                    `json:"introSlideshow"`
	Characters        []rawCharacter                `json:"characters"`
	Locations         []rawLocation                 `json:"locations"`
	Objects           []rawObject                   `json:"objects"`
	Events            []rawEvent                    `json:"events"`
	Sublocations      []rawSublocation              `json:"sublocations"`
	Testimonies       []rawTestimony                `json:"testimonies"`
	EvidenceGroups    []rawEvidenceGroup            `json:"evidenceGroups"`
	EvidenceStacks    []rawEvidenceGroup            `json:"evidenceStacks"`
	Bounties          []rawBounty                   `json:"bounties"`
	CanonicalTimeline []rawTimelineBeat             `json:"canonicalTimeline"`
	CaseFile          rawCaseFile                   `json:"caseFile"`
	Interviews        map[string][]rawDialogueChunk `json:"interviews"`
}

type rawMetadata struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Version string `json:"version"`
}

type rawStoryInfo struct {
	Title                string `json:"title"`
	Synopsis             string `json:"synopsis"`
	VictimID             string `json:"victimId"`
	CrimeSceneLocationID string `json:"crimeSceneLocationId"`
}

type rawSlide struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	ImagePrompt string `json:"imagePrompt"`
}

type rawPhysicalCharacteristics struct {
	Height   string `json:"height"`
	Weight   string `json:"weight"`
	Eyes     string `json:"eyes"`
	Hair     string `json:"hair"`
	Features string `json:"features"`
}

type rawComponent struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type rawCharacter struct {
	ID                      string                      `json:"id"`
	Name                    string                      `json:"name"`
	Age                     int                         `json:"age"`
	Occupation              string                      `json:"occupation"`
	Role                    string                      `json:"role"`
	IsSuspect               bool                        `json:"isSuspect"`
	Bio                     string                      `json:"bio"`
	Description             string                      `json:"description"`
	Statement               string                      `json:"statement"`
	PhysicalCharacteristics *rawPhysicalCharacteristics `json:"physicalCharacteristics"`
	Components              []rawComponent              `json:"components"`
	RelatedPeople           []string                    `json:"relatedPeople"`
	KnownLocations          []string                    `json:"knownLocations"`
	AssociatedObjects       []string                    `json:"associatedObjects"`
}

type rawUnlock struct {
	Type string `json:"type"`
	Ref  string `json:"ref"`
	Time int    `json:"time"`
}

type rawObject struct {
	ID                      string      `json:"id"`
	Name                    string      `json:"name"`
	Description             string      `json:"description"`
	UnidentifiedDescription string      `json:"unidentifiedDescription"`
	Category                string      `json:"category"`
	LocationFoundID         string      `json:"locationFoundId"`
	Rarity                  string      `json:"rarity"`
	IsEvidence              bool        `json:"isEvidence"`
	HasBeenUnlocked         bool        `json:"hasBeenUnlocked"`
	TimeToAdd               int         `json:"timeToAdd"`
	Unlocks                 []rawUnlock `json:"unlocks"`
	AuthorCharacterID       string      `json:"authorCharacterId"`
	OwnerCharacterID        string      `json:"ownerCharacterId"`
	ImagePrompt             string      `json:"imagePrompt"`
	Timestamp               string      `json:"timestamp"`
}

type rawHotspot struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	TargetID   string `json:"targetId"`
	TargetType string `json:"targetType"`
	X          string `json:"x"`
	Y          string `json:"y"`
}

type rawLocation struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	X           string       `json:"x"`
	Y           string       `json:"y"`
	Hotspots    []rawHotspot `json:"hotspots"`
	IsInternal  bool         `json:"isInternal"`
}

type rawEvent struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	HasBeenUnlocked bool        `json:"hasBeenUnlocked"`
	TimeToAdd       int         `json:"timeToAdd"`
	Unlocks         []rawUnlock `json:"unlocks"`
}

type rawSublocation struct {
	ID              string      `json:"id"`
	LocationID      string      `json:"locationId"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	IsVisible       bool        `json:"isVisible"`
	HasBeenUnlocked bool        `json:"hasBeenUnlocked"`
	TimeToAdd       int         `json:"timeToAdd"`
	Unlocks         []rawUnlock `json:"unlocks"`
}

type rawTestimony struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CharacterID string `json:"characterId"`
}

type rawEvidenceGroup struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ObjectIDs []string `json:"objectIds"`
}

type rawBounty struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Reward      int    `json:"reward"`
}

type rawTimelineBeat struct {
	Time        string `json:"time"`
	EventKey    string `json:"eventKey"`
	Description string `json:"description"`
}

type rawDialogueChunk struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type rawClue struct {
	ID       string `json:"id"`
	EventKey string `json:"eventKey"`
	Text     string `json:"text"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Points   int    `json:"points"`
	Bonus    int    `json:"bonus"`
}

type rawSlot struct {
	ID              string `json:"id"`
	CorrectEventKey string `json:"correctEventKey"`
}

type rawAnchor struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	PrimarySlot     rawSlot   `json:"primarySlot"`
	SupportingSlots []rawSlot `json:"supportingSlots"`
}

type rawCaseFile struct {
	Clues   []rawClue   `json:"clues"`
	Anchors []rawAnchor `json:"anchors"`
}
