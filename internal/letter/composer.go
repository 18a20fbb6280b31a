// Package letter assembles templated cover letters from job metadata, the
// candidate's details and, optionally, the job's score.
package letter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"alfredoptarigan/job-tracker/internal/profile"
	"alfredoptarigan/job-tracker/internal/scoring"
)

// StyleAuto asks the composer to classify the job text.
const StyleAuto = "auto"

var ErrUnknownStyle = errors.New("unknown letter style")

type Options struct {
	Style         string
	ContactPerson string
	Score         *scoring.ScoreResult
	Date          time.Time
}

type Letter struct {
	Style        string    `json:"style"`
	AutoSelected bool      `json:"auto_selected"`
	Opening      string    `json:"opening"`
	Body         []string  `json:"body"`
	Closing      string    `json:"closing"`
	CallToAction string    `json:"call_to_action"`
	FullText     string    `json:"full_text"`
	Date         time.Time `json:"date"`
}

type Composer struct {
	candidate profile.Candidate
	templates Templates
}

func NewComposer(candidate profile.Candidate, templates Templates) *Composer {
	return &Composer{candidate: candidate, templates: templates}
}

// Styles lists the available style ids.
func (c *Composer) Styles() []string {
	ids := make([]string, len(c.templates.Styles))
	for i, s := range c.templates.Styles {
		ids[i] = s.ID
	}
	return ids
}

// SelectStyle picks the style whose keywords best match the job text.
func (c *Composer) SelectStyle(job *scoring.JobRecord) string {
	return scoring.ClassifyStyle(job.Text(), c.templates.Buckets())
}

// Compose builds the letter for job. An empty style or StyleAuto selects the
// style from the job text.
func (c *Composer) Compose(job *scoring.JobRecord, opts Options) (*Letter, error) {
	if job == nil {
		return nil, &scoring.NotFoundError{}
	}

	styleID := strings.TrimSpace(opts.Style)
	auto := styleID == "" || styleID == StyleAuto
	if auto {
		styleID = c.SelectStyle(job)
	}
	style, ok := c.templates.style(styleID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleID)
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	company := strings.TrimSpace(job.CompanyName)
	if company == "" {
		company = "your organization"
	}
	fill := strings.NewReplacer(
		"{position}", job.Title,
		"{company}", company,
		"{key_strength}", c.templates.CoreStrength,
		"{relevant_area}", c.templates.RelevantArea,
		"{business_outcome}", c.templates.BusinessOutcome,
	)

	l := &Letter{
		Style:        style.ID,
		AutoSelected: auto,
		Opening:      fill.Replace(style.Opening),
		Body:         c.body(job, style, opts.Score),
		Closing:      fill.Replace(c.templates.Closing),
		CallToAction: fmt.Sprintf("I would welcome the opportunity to discuss how my experience can contribute to %s's continued success. Thank you for considering my application, and I look forward to hearing from you.", company),
		Date:         date,
	}
	l.FullText = c.assemble(job, company, opts.ContactPerson, l)
	return l, nil
}

func (c *Composer) body(job *scoring.JobRecord, style Style, score *scoring.ScoreResult) []string {
	var paragraphs []string

	intro := "In my recent work"
	if c.candidate.CurrentRole != "" && c.candidate.CurrentCompany != "" {
		intro = fmt.Sprintf("In my current role as %s at %s", c.candidate.CurrentRole, c.candidate.CurrentCompany)
	}
	paragraphs = append(paragraphs, fmt.Sprintf("%s, I have demonstrated expertise in %s and %s. %s",
		intro, style.BodyFocus[0], style.BodyFocus[1], style.Achievement))

	second := fmt.Sprintf("What sets me apart is my proven record in %s and %s.", style.BodyFocus[2], style.BodyFocus[3])
	if innovation := c.relevantInnovation(job); innovation != "" {
		second += " " + innovation + " This demonstrates my commitment to pushing boundaries while delivering practical business outcomes."
	}
	paragraphs = append(paragraphs, second)

	if score != nil && len(score.StrongMatches) > 0 {
		strong := score.StrongMatches
		if len(strong) > 3 {
			strong = strong[:3]
		}
		paragraphs = append(paragraphs, fmt.Sprintf("My strongest alignment with this role lies in %s.", joinList(strong)))
	}

	if industry := strings.TrimSpace(job.Industry); industry != "" {
		for _, note := range c.templates.IndustryExpertise {
			if !strings.EqualFold(note.Industry, industry) {
				continue
			}
			company := job.CompanyName
			if company == "" {
				company = "your organization"
			}
			paragraphs = append(paragraphs, fmt.Sprintf(
				"My %s makes me particularly well-suited for %s. I understand the unique challenges and opportunities in %s, having navigated complex stakeholder environments and regulatory requirements.",
				note.Statement, company, strings.ToLower(industry)))
			break
		}
	}

	return paragraphs
}

// relevantInnovation picks the innovation sentence sharing the most words with
// the posting; the first one wins ties.
func (c *Composer) relevantInnovation(job *scoring.JobRecord) string {
	if len(c.templates.Innovations) == 0 {
		return ""
	}
	text := strings.ToLower(job.Description + " " + job.Requirements)

	best, bestScore := c.templates.Innovations[0], 0
	for _, sentence := range c.templates.Innovations {
		score := 0
		for _, word := range strings.Fields(strings.ToLower(sentence)) {
			if strings.Contains(text, word) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = sentence, score
		}
	}
	return best
}

func (c *Composer) assemble(job *scoring.JobRecord, company, contact string, l *Letter) string {
	if strings.TrimSpace(contact) == "" {
		contact = "Hiring Manager"
	}

	var b strings.Builder
	writeLine := func(prefix, value string) {
		if strings.TrimSpace(value) != "" {
			b.WriteString(prefix + value + "\n")
		}
	}

	writeLine("", c.candidate.Name)
	writeLine("", c.candidate.Address)
	writeLine("Phone: ", c.candidate.Phone)
	writeLine("Email: ", c.candidate.Email)
	writeLine("LinkedIn: ", c.candidate.LinkedIn)
	b.WriteString("\n" + l.Date.Format("January 02, 2006") + "\n\n")

	b.WriteString(contact + "\n")
	b.WriteString(company + "\n")
	writeLine("", job.Location)
	b.WriteString("\nDear " + contact + ",\n\n")

	b.WriteString(l.Opening + "\n\n")
	for _, p := range l.Body {
		b.WriteString(p + "\n\n")
	}
	b.WriteString(l.Closing + "\n\n")
	b.WriteString(l.CallToAction + "\n\n")

	b.WriteString("Sincerely,\n\n")
	writeLine("", c.candidate.Name)
	b.WriteString("\n---\nAttachments: Resume, Portfolio samples\n")

	return b.String()
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName is the markdown file name of a letter.
func FileName(company, position string, date time.Time) string {
	return fmt.Sprintf("CoverLetter_%s_%s_%s.md",
		unsafeFileChars.ReplaceAllString(company, "_"),
		unsafeFileChars.ReplaceAllString(position, "_"),
		date.Format("20060102"))
}
