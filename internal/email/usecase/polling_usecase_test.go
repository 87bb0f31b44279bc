package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	alertdomain "redalert-backend/internal/alert/domain"
	categorydomain "redalert-backend/internal/category/domain"
	emaildomain "redalert-backend/internal/email/domain"
	"redalert-backend/pkg/ai"
	"redalert-backend/pkg/breaker"

	"google.golang.org/api/googleapi"
)

const sentDate = "Tue, 16 Dec 2025 19:01:33 -0300"

type fakeMailbox struct {
	mu        sync.Mutex
	ids       []string
	messages  map[string]*emaildomain.RawMessage
	searchErr error
	fetchErr  error
	markErr   error
	onFetch   func()
	queries   []string
	fetched   map[string]int
	marked    map[string]int
}

func newFakeMailbox(msgs ...*emaildomain.RawMessage) *fakeMailbox {
	m := &fakeMailbox{
		messages: make(map[string]*emaildomain.RawMessage),
		fetched:  make(map[string]int),
		marked:   make(map[string]int),
	}
	for _, msg := range msgs {
		m.ids = append(m.ids, msg.ID)
		m.messages[msg.ID] = msg
	}
	return m
}

func (m *fakeMailbox) Search(ctx context.Context, query string, maxResults int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return append([]string(nil), m.ids...), nil
}

func (m *fakeMailbox) FetchFull(ctx context.Context, id string) (*emaildomain.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetched[id]++
	if m.onFetch != nil {
		m.onFetch()
	}
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.messages[id], nil
}

func (m *fakeMailbox) MarkRead(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marked[id]++
	return m.markErr
}

func (m *fakeMailbox) fetchCount(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetched[id]
}

func (m *fakeMailbox) markCount(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.marked[id]
}

type fakeExtractor struct {
	mu    sync.Mutex
	calls int
	refs  []time.Time
	fn    func(text string, receivedAt time.Time) (*alertdomain.ClassAlert, error)
}

func (f *fakeExtractor) Analyze(ctx context.Context, text string, receivedAt time.Time) (*alertdomain.ClassAlert, error) {
	f.mu.Lock()
	f.calls++
	f.refs = append(f.refs, receivedAt)
	f.mu.Unlock()
	if f.fn == nil {
		return nil, nil
	}
	return f.fn(text, receivedAt)
}

func (f *fakeExtractor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCalendar struct {
	mu    sync.Mutex
	calls int
	link  *string
}

func (f *fakeCalendar) EnsureEvent(ctx context.Context, alert *alertdomain.ClassAlert) *string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.link
}

type fakeNotifier struct {
	mu     sync.Mutex
	alerts []*alertdomain.ClassAlert
}

func (f *fakeNotifier) Publish(ctx context.Context, alert *alertdomain.ClassAlert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alert)
}

func (f *fakeNotifier) published() []*alertdomain.ClassAlert {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*alertdomain.ClassAlert(nil), f.alerts...)
}

type fakeCategories struct {
	categories []*categorydomain.Category
	err        error
}

func (f *fakeCategories) FindActive() ([]*categorydomain.Category, error) {
	return f.categories, f.err
}

type fakeLedger struct {
	mu      sync.Mutex
	records map[string]*emaildomain.ProcessedEmail
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[string]*emaildomain.ProcessedEmail)}
}

func (f *fakeLedger) InsertIfAbsent(rec *emaildomain.ProcessedEmail) (*emaildomain.ProcessedEmail, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.records[rec.EmailID]; ok {
		return existing, false, nil
	}
	f.records[rec.EmailID] = rec
	return rec, true, nil
}

func (f *fakeLedger) ExistsByEmailID(id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[id]
	return ok, nil
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeRecorder struct {
	mu     sync.Mutex
	alerts []*alertdomain.Alert
}

func (f *fakeRecorder) Save(a *alertdomain.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, a)
	return nil
}

type harness struct {
	mailbox   *fakeMailbox
	extractor *fakeExtractor
	calendar  *fakeCalendar
	notifier  *fakeNotifier
	ledger    *fakeLedger
	recorder  *fakeRecorder
	breaker   *breaker.Breaker
	poller    *PollingUsecase
}

func newHarness(t *testing.T, cfg PollerConfig, msgs ...*emaildomain.RawMessage) *harness {
	t.Helper()
	link := "https://calendar.example/event/1"
	h := &harness{
		mailbox:   newFakeMailbox(msgs...),
		extractor: &fakeExtractor{},
		calendar:  &fakeCalendar{link: &link},
		notifier:  &fakeNotifier{},
		ledger:    newFakeLedger(),
		recorder:  &fakeRecorder{},
		breaker:   breaker.New("mailbox", 3, time.Minute),
	}
	h.poller = h.build(cfg)
	return h
}

func (h *harness) build(cfg PollerConfig) *PollingUsecase {
	categories := &fakeCategories{categories: []*categorydomain.Category{
		{ID: "cat-1", Name: "Classes", SubjectKeywords: "aula", IsActive: true},
	}}
	return NewPollingUsecase(h.mailbox, h.extractor, h.calendar, h.notifier, categories, h.ledger, h.recorder, h.breaker, cfg)
}

func rawMessage(id, subject, body string) *emaildomain.RawMessage {
	return &emaildomain.RawMessage{
		ID:       id,
		From:     "prof@university.edu",
		Subject:  subject,
		Date:     sentDate,
		BodyData: base64.URLEncoding.EncodeToString([]byte(body)),
	}
}

func classAlert(title string) func(string, time.Time) (*alertdomain.ClassAlert, error) {
	return func(_ string, receivedAt time.Time) (*alertdomain.ClassAlert, error) {
		url := "https://meet.example/abc"
		return &alertdomain.ClassAlert{
			Title:       title,
			Date:        time.Date(2025, 12, 18, 19, 0, 0, 0, time.UTC),
			URL:         &url,
			Description: "Bring laptop",
		}, nil
	}
}

func TestPollEmails_MatchPublishesAlert(t *testing.T) {
	h := newHarness(t, PollerConfig{ForceUrgent: true, MaxPerCycle: 5}, rawMessage("m1", "Aula extra", "Aula quinta 19h"))
	h.extractor.fn = classAlert("Aula extra")

	result, err := h.poller.PollEmails(context.Background())
	if err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if result.Matched != 1 || result.Analyzed != 1 || result.Found != 1 {
		t.Errorf("result = %+v", result)
	}

	alerts := h.notifier.published()
	if len(alerts) != 1 {
		t.Fatalf("published %d alerts, want 1", len(alerts))
	}
	got := alerts[0]
	if !got.IsUrgent {
		t.Error("expected alert to be forced urgent")
	}
	if got.CalendarLink == nil || *got.CalendarLink != "https://calendar.example/event/1" {
		t.Errorf("CalendarLink = %v", got.CalendarLink)
	}
	if h.ledger.count() != 1 {
		t.Errorf("ledger records = %d, want 1", h.ledger.count())
	}
	if len(h.recorder.alerts) != 1 || h.recorder.alerts[0].EmailID != "m1" {
		t.Errorf("history = %+v", h.recorder.alerts)
	}
	if h.mailbox.markCount("m1") != 1 {
		t.Errorf("MarkRead calls = %d, want 1", h.mailbox.markCount("m1"))
	}
	if q := h.mailbox.queries[0]; q != "subject:(aula) is:unread" {
		t.Errorf("query = %q", q)
	}
}

func TestPollEmails_NoMatchSendsInformationalAlert(t *testing.T) {
	body := "Hi all,\nTeam Sync moved to Friday."
	h := newHarness(t, PollerConfig{ForceUrgent: true}, rawMessage("m1", "Team Sync", body))

	if _, err := h.poller.PollEmails(context.Background()); err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}

	alerts := h.notifier.published()
	if len(alerts) != 1 {
		t.Fatalf("published %d alerts, want 1", len(alerts))
	}
	got := alerts[0]
	if got.IsUrgent {
		t.Error("informational alert must not be urgent")
	}
	if got.URL != nil || got.CalendarLink != nil {
		t.Errorf("url/calendarLink = %v/%v, want nil", got.URL, got.CalendarLink)
	}
	if got.Title != "Team Sync" {
		t.Errorf("Title = %q", got.Title)
	}
	if !strings.Contains(got.Description, "prof@university.edu") || !strings.Contains(got.Description, "Team Sync moved to Friday.") {
		t.Errorf("Description = %q", got.Description)
	}
	want := time.Date(2025, 12, 16, 22, 1, 33, 0, time.UTC)
	if !got.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", got.Date, want)
	}
	if h.calendar.calls != 0 || h.ledger.count() != 0 || len(h.recorder.alerts) != 0 {
		t.Error("no-match path must not touch calendar, ledger or history")
	}
	if h.mailbox.markCount("m1") != 1 {
		t.Errorf("MarkRead calls = %d, want 1", h.mailbox.markCount("m1"))
	}
}

func TestPollEmails_EmptySubjectFallbackTitle(t *testing.T) {
	h := newHarness(t, PollerConfig{}, rawMessage("m1", "", "hello"))

	if _, err := h.poller.PollEmails(context.Background()); err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if alerts := h.notifier.published(); len(alerts) != 1 || alerts[0].Title != "(No Subject)" {
		t.Errorf("alerts = %+v", alerts)
	}
}

func TestPollEmails_InvalidAlertTakesFallback(t *testing.T) {
	h := newHarness(t, PollerConfig{ForceUrgent: true}, rawMessage("m1", "Aula", "texto"))
	h.extractor.fn = func(string, time.Time) (*alertdomain.ClassAlert, error) {
		return &alertdomain.ClassAlert{Title: "  "}, nil
	}

	if _, err := h.poller.PollEmails(context.Background()); err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if h.calendar.calls != 0 || h.ledger.count() != 0 {
		t.Error("invalid alert must not reach calendar or ledger")
	}
	if alerts := h.notifier.published(); len(alerts) != 1 || alerts[0].IsUrgent {
		t.Errorf("alerts = %+v", alerts)
	}
}

func TestPollEmails_AnalyzerErrorTakesFallback(t *testing.T) {
	h := newHarness(t, PollerConfig{}, rawMessage("m1", "Aula", "texto"))
	h.extractor.fn = func(string, time.Time) (*alertdomain.ClassAlert, error) {
		return nil, errors.New("provider down")
	}

	if _, err := h.poller.PollEmails(context.Background()); err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if alerts := h.notifier.published(); len(alerts) != 1 || alerts[0].Title != "Aula" {
		t.Errorf("alerts = %+v", alerts)
	}
}

func TestPollEmails_SeenMessageIsNotRefetched(t *testing.T) {
	h := newHarness(t, PollerConfig{}, rawMessage("m1", "Aula", "texto"))

	for i := 0; i < 3; i++ {
		if _, err := h.poller.PollEmails(context.Background()); err != nil {
			t.Fatalf("PollEmails() error = %v", err)
		}
	}
	if got := h.mailbox.fetchCount("m1"); got != 1 {
		t.Errorf("FetchFull calls = %d, want 1", got)
	}
	if got := h.extractor.count(); got != 1 {
		t.Errorf("Analyze calls = %d, want 1", got)
	}
}

func TestPollEmails_OverlappingCyclesProduceOneRecord(t *testing.T) {
	h := newHarness(t, PollerConfig{ForceUrgent: true}, rawMessage("m1", "Aula", "texto"))
	h.extractor.fn = classAlert("Aula")
	// A second poller simulates a restarted process with an empty seen-set
	// sharing the same ledger.
	second := h.build(PollerConfig{ForceUrgent: true})

	var wg sync.WaitGroup
	for _, p := range []*PollingUsecase{h.poller, h.poller, second, second} {
		wg.Add(1)
		go func(p *PollingUsecase) {
			defer wg.Done()
			if _, err := p.PollEmails(context.Background()); err != nil {
				t.Errorf("PollEmails() error = %v", err)
			}
		}(p)
	}
	wg.Wait()

	if h.ledger.count() != 1 {
		t.Errorf("ledger records = %d, want 1", h.ledger.count())
	}
	if h.calendar.calls > 1 {
		t.Errorf("EnsureEvent calls = %d, want at most 1", h.calendar.calls)
	}
	urgent := 0
	for _, a := range h.notifier.published() {
		if a.IsUrgent {
			urgent++
		}
	}
	if urgent != 1 {
		t.Errorf("urgent alerts = %d, want 1", urgent)
	}
}

func TestPollEmails_LedgerHitMarksReadWithoutAnalysis(t *testing.T) {
	h := newHarness(t, PollerConfig{CheckLedger: true}, rawMessage("m1", "Aula", "texto"))
	h.ledger.records["m1"] = &emaildomain.ProcessedEmail{EmailID: "m1"}

	if _, err := h.poller.PollEmails(context.Background()); err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if h.mailbox.fetchCount("m1") != 0 || h.extractor.count() != 0 {
		t.Error("ledger hit must skip fetch and analysis")
	}
	if h.mailbox.markCount("m1") != 1 {
		t.Errorf("MarkRead calls = %d, want 1", h.mailbox.markCount("m1"))
	}
}

func TestPollEmails_CalendarFailureStillPublishes(t *testing.T) {
	h := newHarness(t, PollerConfig{ForceUrgent: true}, rawMessage("m1", "Aula", "texto"))
	h.extractor.fn = classAlert("Aula")
	h.calendar.link = nil

	if _, err := h.poller.PollEmails(context.Background()); err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	alerts := h.notifier.published()
	if len(alerts) != 1 || alerts[0].CalendarLink != nil || !alerts[0].IsUrgent {
		t.Errorf("alerts = %+v", alerts)
	}
}

func TestPollEmails_CapLeavesRemainingUnread(t *testing.T) {
	msgs := []*emaildomain.RawMessage{
		rawMessage("m1", "a", "one"),
		rawMessage("m2", "b", "two"),
		rawMessage("m3", "c", "three"),
	}
	h := newHarness(t, PollerConfig{MaxPerCycle: 2}, msgs...)

	result, err := h.poller.PollEmails(context.Background())
	if err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if result.Analyzed != 2 || !result.CapReached {
		t.Errorf("result = %+v", result)
	}
	if h.mailbox.fetchCount("m3") != 0 || h.mailbox.markCount("m3") != 0 {
		t.Error("message past the cap must stay unfetched and unread")
	}
	if h.poller.Seen().Contains("m3") {
		t.Error("message past the cap must not be claimed")
	}

	if _, err := h.poller.PollEmails(context.Background()); err != nil {
		t.Fatalf("second PollEmails() error = %v", err)
	}
	if h.mailbox.fetchCount("m3") != 1 {
		t.Errorf("m3 fetched %d times on next cycle, want 1", h.mailbox.fetchCount("m3"))
	}
}

func TestPollEmails_EmptyBodySkipsAnalysis(t *testing.T) {
	msg := &emaildomain.RawMessage{ID: "m1", Subject: "blank", Date: sentDate}
	h := newHarness(t, PollerConfig{}, msg)

	if _, err := h.poller.PollEmails(context.Background()); err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if h.extractor.count() != 0 || len(h.notifier.published()) != 0 {
		t.Error("empty body must not be analyzed or published")
	}
	if h.mailbox.markCount("m1") != 1 {
		t.Errorf("MarkRead calls = %d, want 1", h.mailbox.markCount("m1"))
	}
}

func TestPollEmails_UnparseableDateUsesClock(t *testing.T) {
	msg := rawMessage("m1", "Aula", "texto")
	msg.Date = "16/12/2025 19:01"
	h := newHarness(t, PollerConfig{}, msg)
	fixed := time.Date(2025, 12, 20, 8, 0, 0, 0, time.UTC)
	h.poller.SetClock(func() time.Time { return fixed })

	if _, err := h.poller.PollEmails(context.Background()); err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if len(h.extractor.refs) != 1 || !h.extractor.refs[0].Equal(fixed) {
		t.Errorf("reference dates = %v, want %v", h.extractor.refs, fixed)
	}
}

func TestPollEmails_MarkReadFailureIsTolerated(t *testing.T) {
	h := newHarness(t, PollerConfig{}, rawMessage("m1", "Aula", "texto"))
	h.mailbox.markErr = errors.New("403")

	result, err := h.poller.PollEmails(context.Background())
	if err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if result.Failed != 0 || len(h.notifier.published()) != 1 {
		t.Errorf("result = %+v, published = %d", result, len(h.notifier.published()))
	}
}

func TestPollEmails_FetchFailureReleasesClaim(t *testing.T) {
	h := newHarness(t, PollerConfig{}, rawMessage("m1", "Aula", "texto"))
	h.mailbox.fetchErr = errors.New("timeout")

	result, _ := h.poller.PollEmails(context.Background())
	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if h.poller.Seen().Contains("m1") {
		t.Error("failed fetch must release the claim")
	}
	if h.mailbox.markCount("m1") != 0 {
		t.Error("failed fetch must not mark read")
	}
}

func TestPollEmails_PermanentFetchErrorsKeepBreakerClosed(t *testing.T) {
	h := newHarness(t, PollerConfig{},
		rawMessage("m1", "Aula", "texto"),
		rawMessage("m2", "Aula", "texto"),
		rawMessage("m3", "Aula", "texto"),
		rawMessage("m4", "Aula", "texto"),
	)
	h.mailbox.fetchErr = &googleapi.Error{Code: 404, Message: "Requested entity was not found."}

	result, err := h.poller.PollEmails(context.Background())
	if err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if result.Failed != 4 || result.Skipped {
		t.Errorf("result = %+v, want 4 failures and no skip", result)
	}
	if h.breaker.State() != breaker.StateClosed {
		t.Errorf("breaker state = %s, want closed", h.breaker.State())
	}
	for _, id := range []string{"m1", "m2", "m3", "m4"} {
		if h.poller.Seen().Contains(id) || h.mailbox.markCount(id) != 0 {
			t.Errorf("%s: claim kept or marked read", id)
		}
	}
}

func TestPollEmails_CancelDuringFetchLeavesMessageUnread(t *testing.T) {
	h := newHarness(t, PollerConfig{ForceUrgent: true}, rawMessage("m1", "Aula extra", "Aula quinta 19h"))
	h.extractor.fn = classAlert("Aula extra")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.mailbox.onFetch = cancel

	result, err := h.poller.PollEmails(ctx)
	if err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if result.Failed != 0 {
		t.Errorf("Failed = %d, want 0", result.Failed)
	}
	if h.extractor.count() != 0 {
		t.Errorf("extractor calls = %d, want 0", h.extractor.count())
	}
	if n := len(h.notifier.published()); n != 0 {
		t.Errorf("published %d alerts, want 0", n)
	}
	if h.calendar.calls != 0 || h.ledger.count() != 0 {
		t.Error("interrupted message must not reach calendar or ledger")
	}
	if h.poller.Seen().Contains("m1") {
		t.Error("interrupted message must release its claim")
	}
	if h.mailbox.markCount("m1") != 0 {
		t.Error("interrupted message must stay unread")
	}
}

func TestPollEmails_CancelDuringAnalysisLeavesMessageUnread(t *testing.T) {
	h := newHarness(t, PollerConfig{ForceUrgent: true}, rawMessage("m1", "Aula extra", "Aula quinta 19h"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.extractor.fn = func(string, time.Time) (*alertdomain.ClassAlert, error) {
		cancel()
		return nil, context.Canceled
	}

	aiBreaker := breaker.New("ai", 1, time.Hour)
	categories := &fakeCategories{categories: []*categorydomain.Category{
		{ID: "cat-1", Name: "Classes", SubjectKeywords: "aula", IsActive: true},
	}}
	poller := NewPollingUsecase(h.mailbox, ai.NewGuardedExtractor(h.extractor, aiBreaker), h.calendar, h.notifier,
		categories, h.ledger, h.recorder, h.breaker, PollerConfig{ForceUrgent: true})

	if _, err := poller.PollEmails(ctx); err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if aiBreaker.State() != breaker.StateClosed {
		t.Errorf("ai breaker state = %s, want closed", aiBreaker.State())
	}
	if n := len(h.notifier.published()); n != 0 {
		t.Errorf("published %d alerts, want 0", n)
	}
	if h.calendar.calls != 0 || h.ledger.count() != 0 {
		t.Error("interrupted message must not reach calendar or ledger")
	}
	if poller.Seen().Contains("m1") || h.mailbox.markCount("m1") != 0 {
		t.Error("interrupted message must be released and left unread")
	}

	// the next cycle picks it up again
	h.extractor.fn = classAlert("Aula extra")
	if _, err := poller.PollEmails(context.Background()); err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if n := len(h.notifier.published()); n != 1 || !h.notifier.published()[0].IsUrgent {
		t.Errorf("published = %+v, want one urgent alert", h.notifier.published())
	}
	if h.mailbox.markCount("m1") != 1 {
		t.Errorf("MarkRead calls = %d, want 1", h.mailbox.markCount("m1"))
	}
}

func TestPollEmails_OpenBreakerSkipsCycle(t *testing.T) {
	h := newHarness(t, PollerConfig{}, rawMessage("m1", "Aula", "texto"))
	h.mailbox.searchErr = errors.New("unavailable")

	for i := 0; i < 3; i++ {
		if _, err := h.poller.PollEmails(context.Background()); err != nil {
			t.Fatalf("PollEmails() error = %v", err)
		}
	}
	if !h.breaker.IsOpen() {
		t.Fatal("expected breaker to open after repeated search failures")
	}

	searches := len(h.mailbox.queries)
	result, err := h.poller.PollEmails(context.Background())
	if err != nil {
		t.Fatalf("PollEmails() error = %v", err)
	}
	if !result.Skipped {
		t.Error("expected cycle to be skipped")
	}
	if len(h.mailbox.queries) != searches {
		t.Error("skipped cycle must not call the mailbox")
	}
}

func TestPollEmails_CategoryErrors(t *testing.T) {
	tests := []struct {
		name       string
		categories *fakeCategories
		wantErr    bool
	}{
		{name: "lookup fails", categories: &fakeCategories{err: errors.New("db down")}, wantErr: true},
		{name: "no active categories", categories: &fakeCategories{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailbox := newFakeMailbox()
			p := NewPollingUsecase(mailbox, &fakeExtractor{}, &fakeCalendar{}, &fakeNotifier{}, tt.categories, newFakeLedger(), &fakeRecorder{}, nil, PollerConfig{})
			_, err := p.PollEmails(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("PollEmails() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(mailbox.queries) != 0 {
				t.Error("mailbox must not be searched")
			}
		})
	}
}
