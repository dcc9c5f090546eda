// Package upload provides the upload view: a PDF path, the document type
// toggle and a progress bar while the backend processes the file.
package upload

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docuflow-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docuflow-cli/internal/core/services"
)

var errServiceUnavailable = errors.New("upload service not available")

// View is the upload view.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keys    *keymap.KeyMap
	service driving.UploadService

	path    *input.Field
	docType domain.DocumentType

	sim       services.ProgressSimulator
	progress  progress.Model
	uploading bool
	percent   float64
	seq       int

	result *domain.UploadResult
	err    error

	width  int
	height int
	ready  bool
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, service driving.UploadService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		ctx:      context.Background(),
		styles:   s,
		keys:     keymap.DefaultKeyMap(),
		service:  service,
		path:     input.NewField(s, "File", "/path/to/document.pdf"),
		docType:  domain.DocumentTypeInvoice,
		sim:      services.UploadProgress(),
		progress: progress.New(progress.WithDefaultGradient()),
		width:    80,
		height:   24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init focuses the path input.
func (v *View) Init() tea.Cmd {
	if !v.uploading {
		v.err = nil
	}
	return v.path.Focus()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProgressTicked:
		if !v.uploading || msg.Seq != v.seq {
			return v, nil
		}
		v.percent = msg.Percent
		return v, v.tickProgress()

	case messages.UploadCompleted:
		return v.handleCompleted(msg)

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case key.Matches(msg, v.keys.SwitchType):
		if !v.uploading {
			v.toggleType()
		}
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		return v, v.submit()
	}

	if v.uploading {
		return v, nil
	}
	var cmd tea.Cmd
	v.path, cmd = v.path.Update(msg)
	return v, cmd
}

func (v *View) toggleType() {
	if v.docType == domain.DocumentTypeInvoice {
		v.docType = domain.DocumentTypeContract
	} else {
		v.docType = domain.DocumentTypeInvoice
	}
}

func (v *View) submit() tea.Cmd {
	if v.uploading {
		return nil
	}
	if v.service == nil {
		v.err = errServiceUnavailable
		return nil
	}

	req := domain.UploadRequest{Path: v.path.TrimmedValue(), DocumentType: v.docType}
	if err := v.service.Validate(req); err != nil {
		v.err = err
		return messages.Notify(domain.NotifyError, err.Error())
	}

	v.uploading = true
	v.percent = 0
	v.seq++
	v.err = nil
	v.result = nil

	svc := v.service
	ctx := v.ctx
	send := func() tea.Msg {
		result, err := svc.Upload(ctx, req)
		return messages.UploadCompleted{Path: req.Path, Result: result, Err: err}
	}
	return tea.Batch(v.tickProgress(), send)
}

func (v *View) tickProgress() tea.Cmd {
	seq := v.seq
	current := v.percent
	sim := v.sim
	return tea.Tick(sim.Interval, func(time.Time) tea.Msg {
		return messages.ProgressTicked{View: messages.ViewUpload, Seq: seq, Percent: sim.Next(current)}
	})
}

func (v *View) handleCompleted(msg messages.UploadCompleted) (*View, tea.Cmd) {
	v.uploading = false
	if msg.Err != nil {
		v.percent = 0
		v.err = msg.Err
		return v, nil
	}

	v.percent = services.ProgressComplete
	v.result = msg.Result
	if msg.Result == nil {
		return v, nil
	}
	if !msg.Result.Success {
		return v, messages.Notify(domain.NotifyError, msg.Result.Message)
	}
	v.path.Reset()
	text := msg.Result.Message
	if text == "" {
		text = "Upload complete"
	}
	return v, messages.Notify(domain.NotifySuccess, text)
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Upload document"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("PDF only, up to %d MB", domain.MaxUploadSize/(1024*1024))))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("Type: "))
	for _, t := range []domain.DocumentType{domain.DocumentTypeInvoice, domain.DocumentTypeContract} {
		label := strings.ToUpper(t.String()[:1]) + t.String()[1:]
		if t == v.docType {
			b.WriteString(v.styles.Selected.Render(" " + label + " "))
		} else {
			b.WriteString(v.styles.Muted.Render(" " + label + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	b.WriteString(v.path.View())
	b.WriteString("\n\n")

	if v.uploading || v.percent >= services.ProgressComplete {
		b.WriteString(v.progress.ViewAs(v.percent / 100))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.result != nil {
		b.WriteString(v.renderResult())
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("[enter] Upload  [tab] Switch type  [esc] Back"))
	return b.String()
}

func (v *View) renderResult() string {
	var b strings.Builder
	if v.result.Success {
		b.WriteString(v.styles.Success.Render("✓ " + v.result.Message))
	} else {
		b.WriteString(v.styles.Error.Render("✗ " + v.result.Message))
	}
	b.WriteString("\n")

	keys := make([]string, 0, len(v.result.Metadata))
	for k := range v.result.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(v.styles.Muted.Render(k + ": "))
		b.WriteString(v.styles.Normal.Render(fmt.Sprint(v.result.Metadata[k])))
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.path.SetWidth(width)
	v.progress.Width = min(max(width-10, 10), 60)
}

// DocumentType returns the selected document type.
func (v *View) DocumentType() domain.DocumentType {
	return v.docType
}

// Uploading returns whether an upload is in flight.
func (v *View) Uploading() bool {
	return v.uploading
}

// Percent returns the progress bar value.
func (v *View) Percent() float64 {
	return v.percent
}

// Result returns the last upload result.
func (v *View) Result() *domain.UploadResult {
	return v.result
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
