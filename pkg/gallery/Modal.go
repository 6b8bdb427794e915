package gallery

import (
	"log/slog"
	"sync"
)

type ModalControllerConfig struct {
	// Template names for the two modal fragments. An empty name means
	// the binding is absent; operations on that modal become logged
	// no-ops instead of errors.
	ContactTemplate      string
	ConfirmationTemplate string
}

/*
ModalController tracks two independent binary state machines: the
contact modal and the confirmation modal. Neither is coupled to the
lightbox. Opening either modal locks body scroll; the view layer reads
the snapshot and toggles classes accordingly.
*/
type ModalController struct {
	mu sync.Mutex

	contactTemplate      string
	confirmationTemplate string

	contactOpen      bool
	confirmationOpen bool

	// one-shot render signals, cleared on Snapshot
	focusConfirmation bool
	resetContactForm  bool
}

// ModalState is a render snapshot. FocusConfirmation and
// ResetContactForm fire once per transition and clear on read.
type ModalState struct {
	ContactOpen       bool
	ConfirmationOpen  bool
	ScrollLocked      bool
	FocusConfirmation bool
	ResetContactForm  bool
}

func NewModalController(config ModalControllerConfig) *ModalController {
	return &ModalController{
		contactTemplate:      config.ContactTemplate,
		confirmationTemplate: config.ConfirmationTemplate,
	}
}

func (c *ModalController) LaunchContact() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.contactTemplate == "" {
		slog.Error("contact modal binding missing, ignoring launch", "error", ErrElementMissing)
		return
	}

	c.contactOpen = true
}

func (c *ModalController) CloseContact() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.contactTemplate == "" {
		slog.Error("contact modal binding missing, ignoring close", "error", ErrElementMissing)
		return
	}

	c.contactOpen = false
}

// OpenConfirmation opens the confirmation modal and requests focus on
// its first focusable descendant.
func (c *ModalController) OpenConfirmation() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.confirmationTemplate == "" {
		slog.Error("confirmation modal binding missing, ignoring open", "error", ErrElementMissing)
		return
	}

	c.confirmationOpen = true
	c.focusConfirmation = true
}

// CloseConfirmation closes the confirmation modal and requests a reset
// of the contact form.
func (c *ModalController) CloseConfirmation() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.confirmationTemplate == "" {
		slog.Error("confirmation modal binding missing, ignoring close", "error", ErrElementMissing)
		return
	}

	c.confirmationOpen = false
	c.resetContactForm = true
}

// CloseAny closes whichever modal is open, contact first. Returns true
// when a modal was closed, for the Escape precedence chain.
func (c *ModalController) CloseAny() bool {
	c.mu.Lock()
	contactOpen := c.contactOpen
	confirmationOpen := c.confirmationOpen
	c.mu.Unlock()

	if contactOpen {
		c.CloseContact()
		return true
	}

	if confirmationOpen {
		c.CloseConfirmation()
		return true
	}

	return false
}

func (c *ModalController) AnyOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contactOpen || c.confirmationOpen
}

func (c *ModalController) Snapshot() ModalState {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := ModalState{
		ContactOpen:       c.contactOpen,
		ConfirmationOpen:  c.confirmationOpen,
		ScrollLocked:      c.contactOpen || c.confirmationOpen,
		FocusConfirmation: c.focusConfirmation,
		ResetContactForm:  c.resetContactForm,
	}

	c.focusConfirmation = false
	c.resetContactForm = false

	return state
}

func (c *ModalController) ContactTemplate() string {
	return c.contactTemplate
}

func (c *ModalController) ConfirmationTemplate() string {
	return c.confirmationTemplate
}
