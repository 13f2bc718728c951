// Package dialogue implements the conversational state machine: reset and
// menu commands, the name, comparison and contact sub-dialogues, and the
// free-form path through the generation service.
package dialogue

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/catalog"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/contact"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/leads"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/llm"
	logx "github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/log"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/monitoring"
	"github.com/ElNathalis/RealEstateManagerBot/internal/estatebot/session"
)

// Engine drives one conversation turn at a time. Turns for the same user
// are serialized with a per-user lock; turns for different users run
// concurrently.
type Engine struct {
	catalog  *catalog.Catalog
	sessions session.Store
	leads    leads.Store
	client   llm.Client
	logger   *logx.Logger
	metrics  *monitoring.Metrics

	userLocks sync.Map // userID -> *sync.Mutex
}

func NewEngine(cat *catalog.Catalog, sessions session.Store, leadStore leads.Store, client llm.Client, logger *logx.Logger, metrics *monitoring.Metrics) *Engine {
	return &Engine{
		catalog:  cat,
		sessions: sessions,
		leads:    leadStore,
		client:   client,
		logger:   logger,
		metrics:  metrics,
	}
}

func (e *Engine) lockUser(userID string) *sync.Mutex {
	mu, _ := e.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Reset wipes the user's session entirely. Used by /start and /reset.
func (e *Engine) Reset(ctx context.Context, userID string) error {
	mu := e.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()
	return e.sessions.Reset(ctx, userID)
}

// HandleMessage processes one incoming user message and returns the
// outgoing replies in order. It never returns an error to the transport
// for dialogue-level failures; those surface as apology replies. An
// unexpected fault is caught here, logged, and answered with a generic
// apology while the stored session stays as it was before the turn.
func (e *Engine) HandleMessage(ctx context.Context, userID, text string) (replies []Reply, err error) {
	mu := e.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	ctx = logx.WithUserID(ctx, userID)

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error(ctx, "dialogue turn panicked", logx.KV("panic", fmt.Sprint(r)))
			replies = []Reply{{Text: internalErrorText}}
			err = nil
		}
	}()

	if e.metrics != nil {
		e.metrics.MessageHandled()
	}

	stored, err := e.sessions.Get(ctx, userID)
	if err != nil {
		e.logger.Error(ctx, "session load failed", logx.KV("error", err.Error()))
		return []Reply{{Text: internalErrorText}}, nil
	}
	sess := stored.Clone()

	text = strings.TrimSpace(text)
	replies = e.dispatch(ctx, sess, text)

	if saveErr := e.sessions.Save(ctx, sess); saveErr != nil {
		e.logger.Error(ctx, "session save failed", logx.KV("error", saveErr.Error()))
	}
	return replies, nil
}

func (e *Engine) dispatch(ctx context.Context, sess *session.Session, text string) []Reply {
	if isResetPhrase(text) {
		sess.ClearSubDialogues()
		return []Reply{{Text: mainMenuTitle, Menu: MenuMain}}
	}

	if text == ButtonStartChat {
		sess.Mode = session.ModeExpectingName
		return []Reply{{Text: askNameText}}
	}

	switch sess.Mode {
	case session.ModeExpectingName:
		return e.handleExpectingName(sess, text)
	case session.ModeConfirmingName:
		return e.handleConfirmingName(sess, text)
	case session.ModeAwaitingComparison:
		return e.handleComparison(sess, text)
	case session.ModeCollectingContacts:
		return e.handleContacts(ctx, sess, text)
	}

	if replies, ok := e.handleMenuCommand(sess, text); ok {
		return replies
	}
	return e.handleFreeForm(ctx, sess, text)
}

func isResetPhrase(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range resetPhrases {
		if lowered == phrase {
			return true
		}
	}
	return false
}

func (e *Engine) handleExpectingName(sess *session.Session, text string) []Reply {
	name := ExtractName(text)
	if len(strings.Fields(name)) > 2 {
		sess.TempName = name
		sess.Mode = session.ModeConfirmingName
		return []Reply{{Text: fmt.Sprintf(confirmNameFormat, name)}}
	}
	return commitName(sess, name)
}

// affirmatives accept the name echoed back during confirmation.
var affirmatives = []string{"да", "yes", "верно"}

func (e *Engine) handleConfirmingName(sess *session.Session, text string) []Reply {
	name := sess.TempName
	lowered := strings.ToLower(strings.TrimSpace(text))
	affirmed := false
	for _, a := range affirmatives {
		if lowered == a {
			affirmed = true
			break
		}
	}
	if !affirmed {
		name = ExtractName(text)
	}
	return commitName(sess, name)
}

func commitName(sess *session.Session, name string) []Reply {
	sess.UserName = name
	sess.TempName = ""
	sess.Mode = session.ModeIdle
	return []Reply{
		{Text: fmt.Sprintf(greetNameFormat, name)},
		{Text: mainMenuTitle, Menu: MenuMain},
	}
}

func (e *Engine) handleComparison(sess *session.Session, text string) []Reply {
	var names []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	if len(names) == 0 {
		return []Reply{{Text: compareEmptyText}}
	}

	sess.Mode = session.ModeIdle
	return []Reply{
		{Text: e.catalog.Compare(names)},
		{Text: compareFollowUpText, Menu: MenuPostComparison},
	}
}

// dialogExcerptTurns is how many recent history turns are attached to a
// saved lead as conversational context.
const dialogExcerptTurns = 3

func (e *Engine) handleContacts(ctx context.Context, sess *session.Session, text string) []Reply {
	info, ok := contact.Extract(text)
	if !ok {
		return []Reply{{Text: contactRetryText}}
	}

	lead := leads.Lead{
		UserID:    sess.UserID,
		Name:      info.Name,
		Phone:     info.Phone,
		Context:   strings.Join(sess.LastTexts(dialogExcerptTurns), " | "),
		Timestamp: time.Now(),
	}
	if err := e.leads.Save(ctx, lead); err != nil {
		e.logger.Error(ctx, "lead save failed", logx.KV("error", err.Error()))
		return []Reply{{Text: contactSaveErrorText}}
	}

	if e.metrics != nil {
		e.metrics.LeadSaved()
	}
	e.logger.Info(ctx, "lead saved", logx.KV("name", info.Name), logx.KV("phone", info.Phone))

	sess.ContactSaved = true
	sess.Mode = session.ModeIdle
	sess.PurgeContactTurns(historyPurgeKeywords)
	return []Reply{
		{Text: fmt.Sprintf(contactSavedFormat, info.Name)},
		{Text: mainMenuTitle, Menu: MenuMain},
	}
}

func (e *Engine) handleMenuCommand(sess *session.Session, text string) ([]Reply, bool) {
	switch text {
	case ButtonShowAll:
		var b strings.Builder
		b.WriteString(allObjectsHeader)
		for _, name := range e.catalog.Names() {
			b.WriteString("• " + name + "\n")
		}
		return []Reply{{Text: strings.TrimRight(b.String(), "\n")}}, true
	case ButtonCompare:
		sess.Mode = session.ModeAwaitingComparison
		return []Reply{{Text: comparePromptText}}, true
	case ButtonLeaveContact:
		sess.Mode = session.ModeCollectingContacts
		return []Reply{{Text: contactPromptText}}, true
	case ButtonHelp:
		return []Reply{{Text: HelpText}}, true
	}
	return nil, false
}

func (e *Engine) handleFreeForm(ctx context.Context, sess *session.Session, text string) []Reply {
	if res := e.catalog.Lookup(text); res.Kind != catalog.KindNotFound {
		sess.CatalogContext = e.catalog.Format(res)
	}

	messages := buildMessages(sess, text, e.catalog.Summary())

	reply, genErr := e.client.Generate(ctx, messages)
	if genErr != nil {
		if e.metrics != nil {
			e.metrics.GenerationFailed()
		}
		e.logger.Warn(ctx, "generation failed, sending apology", logx.KV("error", genErr.Error()))
	} else if !sess.ContactSaved && ContainsContactRequest(reply) {
		// Intent detection runs on the raw reply only for real model
		// output, never on apology text, and never re-triggers once the
		// contact is saved.
		sess.Mode = session.ModeCollectingContacts
	}

	// The raw reply goes into history before the user turn; cleanup is
	// delivery-only and never echoes back into prompts.
	sess.AppendTurn(session.RoleAssistant, reply)
	sess.AppendTurn(session.RoleUser, text)

	return []Reply{{Text: CleanReply(reply)}}
}
