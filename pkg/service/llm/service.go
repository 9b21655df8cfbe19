package llm

import (
	"bytes"
	"context"
	"embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// Error tags for categorization
var (
	ErrTagEmptyResponse   = goerr.NewTag("empty_response")
	ErrTagTemplateFailure = goerr.NewTag("template_failure")
)

//go:embed templates/*.md
var templateFS embed.FS

// Service handles LLM operations of the postmortem pipeline: drafting,
// draft validation and deployment-log summarization.
type Service struct {
	llmClient gollem.LLMClient
}

// New creates a new LLM service
func New(llmClient gollem.LLMClient) *Service {
	return &Service{
		llmClient: llmClient,
	}
}

// GeneratePostmortem runs the drafting call: the fixed instruction
// template combined with the formatted incident context.
func (s *Service) GeneratePostmortem(ctx context.Context, contextText string) (string, error) {
	prompt, err := s.render("postmortem.md", struct{ Context string }{Context: contextText})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, prompt)
}

// ValidateDraft runs the validation call over a drafted postmortem and
// reports whether the validator answered affirmatively.
func (s *Service) ValidateDraft(ctx context.Context, draft string) (bool, error) {
	prompt, err := s.render("validate.md", struct{ Draft string }{Draft: draft})
	if err != nil {
		return false, err
	}

	response, err := s.generate(ctx, prompt)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToUpper(response), "YES"), nil
}

// SummarizeLogs condenses an oversized deployment log into a bullet
// list of errors, warnings and outcome markers.
func (s *Service) SummarizeLogs(ctx context.Context, logs string) (string, error) {
	prompt, err := s.render("log_summary.md", struct{ Logs string }{Logs: logs})
	if err != nil {
		return "", err
	}
	return s.generate(ctx, prompt)
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	session, err := s.llmClient.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate LLM response")
	}

	if len(response.Texts) == 0 || response.Texts[0] == "" {
		return "", goerr.New("empty response from LLM",
			goerr.T(ErrTagEmptyResponse))
	}

	return strings.Join(response.Texts, "\n"), nil
}

func (s *Service) render(name string, data any) (string, error) {
	content, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read prompt template",
			goerr.V("template", name),
			goerr.T(ErrTagTemplateFailure))
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse prompt template",
			goerr.V("template", name),
			goerr.T(ErrTagTemplateFailure))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute prompt template",
			goerr.V("template", name),
			goerr.T(ErrTagTemplateFailure))
	}

	return buf.String(), nil
}
