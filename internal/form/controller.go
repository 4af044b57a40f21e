package form

import (
	"context"
	"errors"

	"tobaccoform/internal/models"

	"go.uber.org/zap"
)

// Controller drives the brand entry form. The host UI owns the controls and
// hands them in as Bindings; the controller owns the mode and keeps control
// visibility in sync with it.
type Controller struct {
	mode      Mode
	view      Bindings
	source    *BrandSource
	submitter *Submitter
	logger    *zap.Logger
}

func NewController(view Bindings, source *BrandSource, submitter *Submitter, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		mode:      SelectExisting,
		view:      view,
		source:    source,
		submitter: submitter,
		logger:    logger,
	}
	c.syncVisibility()
	return c
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) syncVisibility() {
	c.view.Select.SetVisible(c.mode.SelectVisible())
	c.view.Input.SetVisible(c.mode.InputVisible())
}

// AddBrand switches to free-text entry with an empty, focused field. It
// reports false when the form is already in EnterNew.
func (c *Controller) AddBrand() bool {
	if c.mode != SelectExisting {
		return false
	}
	c.mode = EnterNew
	c.view.Input.SetValue("")
	c.syncVisibility()
	c.view.Input.Focus()
	c.logger.Debug("Mode changed", zap.Stringer("mode", c.mode))
	return true
}

// Back returns to the selector and clears the text field. It reports true
// when the mode changed; the caller must then reload the brands.
func (c *Controller) Back() bool {
	if c.mode != EnterNew {
		return false
	}
	c.mode = SelectExisting
	c.view.Input.SetValue("")
	c.syncVisibility()
	c.logger.Debug("Mode changed", zap.Stringer("mode", c.mode))
	return true
}

// FetchBrands asks the catalog for the brand list without touching the
// controls, so it may run off the UI goroutine. Failures yield nil.
func (c *Controller) FetchBrands(ctx context.Context) []models.Brand {
	return c.source.Fetch(ctx)
}

// LoadBrands fetches and installs the brand list in one step.
func (c *Controller) LoadBrands(ctx context.Context) {
	c.ApplyBrands(c.FetchBrands(ctx))
}

// ApplyBrands installs an already fetched list into the selector.
func (c *Controller) ApplyBrands(brands []models.Brand) {
	c.source.Apply(c.view.Select, brands)
}

// Record assembles the record from the current control values.
func (c *Controller) Record() (models.TobaccoRecord, error) {
	var text string
	if c.mode == EnterNew {
		text = c.view.Input.Value()
	}
	brand := ResolveBrand(c.mode, c.view.Select.Selected(), text)
	if brand == "" {
		return models.TobaccoRecord{}, ErrNoBrand
	}
	return models.TobaccoRecord{
		Brand:   brand,
		Taste:   c.view.Fields.Taste(),
		Flavour: c.view.Fields.Flavour(),
	}, nil
}

// Deliver shows a response that arrived for an earlier submission.
func (c *Controller) Deliver(text string) {
	c.view.Notifier.Notify(text)
}

// SendFunc posts an already assembled record. ok is false when the request
// never completed.
type SendFunc func(ctx context.Context) (text string, ok bool)

// Prepare reads the controls now and returns the send for that record. The
// returned function does not touch the controls. A skipped submission is
// logged and reported as ErrNoBrand.
func (c *Controller) Prepare() (SendFunc, error) {
	record, err := c.Record()
	if err != nil {
		c.logger.Info("Submission skipped", zap.Error(err))
		return nil, err
	}
	submitter := c.submitter
	return func(ctx context.Context) (string, bool) {
		return submitter.Send(ctx, record)
	}, nil
}

// Submit prepares, sends and reports a record synchronously. Network failures
// are logged by the submitter and not surfaced; the form is left untouched.
func (c *Controller) Submit(ctx context.Context) error {
	send, err := c.Prepare()
	if err != nil {
		return err
	}
	text, ok := send(ctx)
	if !ok {
		return errors.New("submit: request failed")
	}
	c.Deliver(text)
	return nil
}
