package letter

import "alfredoptarigan/job-tracker/internal/scoring"

// Style is one letter voice: the keywords that select it and the text blocks
// it contributes. Openings may use the {position} and {company} placeholders.
type Style struct {
	ID          string
	Keywords    []string
	Opening     string
	BodyFocus   [4]string
	Achievement string
}

// IndustryNote is the sentence used when the job's industry matches.
type IndustryNote struct {
	Industry  string
	Statement string
}

// Templates is the full text bank used by the Composer.
type Templates struct {
	Styles            []Style
	Innovations       []string
	Closing           string
	CoreStrength      string
	RelevantArea      string
	BusinessOutcome   string
	IndustryExpertise []IndustryNote
}

// Buckets returns the classifier buckets of the styles, in declared order.
func (t Templates) Buckets() []scoring.StyleBucket {
	buckets := make([]scoring.StyleBucket, len(t.Styles))
	for i, s := range t.Styles {
		buckets[i] = scoring.StyleBucket{ID: s.ID, Keywords: s.Keywords}
	}
	return buckets
}

func (t Templates) style(id string) (Style, bool) {
	for _, s := range t.Styles {
		if s.ID == id {
			return s, true
		}
	}
	return Style{}, false
}

const (
	StyleExecutive  = "executive_leadership"
	StyleAI         = "ai_innovation"
	StyleDesign     = "design_leadership"
	StyleConsulting = "consulting"
)

// DefaultTemplates is the built-in text bank.
func DefaultTemplates() Templates {
	return Templates{
		Styles: []Style{
			{
				ID:       StyleExecutive,
				Keywords: []string{"chief", "cto", "cdo", "director", "head of", "executive", "strategic", "leadership"},
				Opening:  "As an executive with a long record of leading design and technology organisations, I am excited to apply for the {position} role at {company}.",
				BodyFocus: [4]string{
					"strategic leadership and executive vision",
					"enterprise transformation and organizational change",
					"C-level stakeholder management and board communication",
					"P&L accountability and business strategy development",
				},
				Achievement: "Leading a multi-year customer service transformation across several business units exemplifies my ability to drive enterprise-wide change and deliver measurable results.",
			},
			{
				ID:       StyleAI,
				Keywords: []string{"ai", "artificial intelligence", "machine learning", "ml", "automation", "intelligent"},
				Opening:  "As a practitioner of AI and UX integration, I am thrilled to apply for the {position} role at {company}, where I can apply my experience with multi-modal design frameworks and intelligent automation.",
				BodyFocus: [4]string{
					"AI/ML integration and multi-agent systems development",
					"multi-modal design frameworks and methodologies",
					"AI-powered automation and intelligent design systems",
					"executive AI dashboard development and analytics",
				},
				Achievement: "I built a collaborative AI design environment that made visual iteration ten times faster, showing how new AI methods can reach production quickly.",
			},
			{
				ID:       StyleDesign,
				Keywords: []string{"design", "ux", "ui", "user experience", "design thinking", "design system"},
				Opening:  "As a design leader who has built design practices from the ground up across financial services and technology, I am excited to apply for the {position} role at {company}.",
				BodyFocus: [4]string{
					"design strategy and vision development",
					"user experience innovation and human-centered design",
					"design systems and operations optimization",
					"cross-functional team leadership and capability building",
				},
				Achievement: "I established a complete design practice inside a financial services business, with a systematic approach to AI and UX integration backed by automated testing.",
			},
			{
				ID:       StyleConsulting,
				Keywords: []string{"consulting", "consultant", "transformation", "process", "optimization", "strategy"},
				Opening:  "As a management consultant with deep expertise in business design and organizational transformation, I am excited to apply for the {position} role at {company}.",
				BodyFocus: [4]string{
					"management consulting and business transformation",
					"process optimization and efficiency improvement",
					"strategic analysis and roadmap development",
					"client relationship management and value delivery",
				},
				Achievement: "Redesigning the operating structure of a banking services unit lifted decision-making efficiency by 20% through focused process optimization.",
			},
		},
		Innovations: []string{
			"I created a multi-modal design framework that pairs human-centered design with AI assistance.",
			"I introduced AI and UX integration methods for enterprise-scale delivery teams.",
			"I set up service design centres of excellence in several large enterprises.",
			"I led AI-powered design automation that shortened design-to-code deployment to minutes.",
		},
		Closing:         "I am excited about the opportunity to bring my track record in {key_strength} to {company} and would welcome the chance to discuss how my experience in {relevant_area} can drive {business_outcome} for your organization.",
		CoreStrength:    "AI and UX integration leadership",
		RelevantArea:    "AI-powered design innovation",
		BusinessOutcome: "digital transformation and competitive advantage",
		IndustryExpertise: []IndustryNote{
			{Industry: "Financial Services", Statement: "extensive experience in banking transformation and regulatory compliance"},
			{Industry: "Technology", Statement: "deep expertise in AI/ML integration and technical architecture"},
			{Industry: "Consulting", Statement: "proven track record in management consulting and business transformation"},
			{Industry: "Education", Statement: "leadership in learning design and capability development"},
		},
	}
}
