package corpus

// recordDTO is the on-disk shape of one dataset record. Only question and
// answer are required; everything else defaults at load time.
type recordDTO struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Category    string   `json:"category,omitempty"`
	SectionRefs []string `json:"section_refs,omitempty"`
	ActRefs     []string `json:"act_refs,omitempty"`
}

// keywordsDTO is the on-disk shape of the domain keyword map.
type keywordsDTO struct {
	Domains map[string][]string `yaml:"domains"`
}
