package models

// Metadata identifies a cartridge.
type Metadata struct {
	Title   string
	Author  string
	Version string
}

// StoryInfo carries the case framing used when a cartridge loads.
type StoryInfo struct {
	Title                string
	Synopsis             string
	VictimID             string
	CrimeSceneLocationID string
}

// Slide is one entry of the intro slideshow.
type Slide struct {
	Title       string
	Text        string
	ImagePrompt string
}

// DialogueChunk is one question/answer pair of a scripted interview.
type DialogueChunk struct {
	Question string
	Answer   string
}

// EvidenceGroup names a curated set of objects, e.g. for a milestone recap.
type EvidenceGroup struct {
	ID        string
	Name      string
	ObjectIDs []string
}

// TimelineBeat is one entry of the authored canonical timeline of the crime.
type TimelineBeat struct {
	Time        string
	EventKey    string
	Description string
}

// Cartridge is the normalized runtime form of a story definition document.
// All collections are fully defaulted; consumers never need to nil-check
// optional fields.
type Cartridge struct {
	Metadata          Metadata
	StoryInfo         StoryInfo
	IntroSlideshow    []Slide
	Characters        []Character
	Locations         []Location
	Objects           []StoryObject
	Events            []StoryEvent
	Sublocations      []Sublocation
	Testimonies       []Testimony
	Bounties          []Bounty
	EvidenceGroups    []EvidenceGroup
	EvidenceStacks    []EvidenceGroup
	CanonicalTimeline []TimelineBeat
	Interviews        map[string][]DialogueChunk
	CaseFile          CaseFile
}
