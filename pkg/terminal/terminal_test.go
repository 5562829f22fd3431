package terminal

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"tableflip.dev/folio/pkg/auth"
	"tableflip.dev/folio/pkg/events"
	"tableflip.dev/folio/pkg/lockout"
	"tableflip.dev/folio/pkg/project"
	"tableflip.dev/folio/pkg/store"
)

const password = "opensesame"

type recorder struct{ paths []string }

func (r *recorder) Navigate(path string) { r.paths = append(r.paths, path) }

func (r *recorder) last() string {
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}

type fixture struct {
	c    *Controller
	nav  *recorder
	kv   *store.Memory
	lock *lockout.Tracker
	now  time.Time
}

func newFixture(t *testing.T, cat *project.Catalog) *fixture {
	t.Helper()
	if cat == nil {
		var err error
		cat, err = project.Default()
		if err != nil {
			t.Fatalf("catalog: %v", err)
		}
	}
	v, err := auth.NewVerifier(auth.Hash(password))
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	f := &fixture{nav: &recorder{}, kv: store.NewMemory()}
	f.now = time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	f.lock = lockout.New(f.kv, nil)
	f.lock.Now = func() time.Time { return f.now }
	f.c = New(Options{
		Catalog:   cat,
		Verifier:  v,
		Lockout:   f.lock,
		Navigator: f.nav,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Greeting:  "welcome",
	})
	return f
}

// run submits line and returns the transcript lines it added.
func (f *fixture) run(line string) []string {
	before := len(f.c.output)
	f.c.Submit(line)
	if len(f.c.output) < before {
		return f.c.Output()
	}
	return append([]string(nil), f.c.output[before:]...)
}

func TestGreetingAndEmptyInput(t *testing.T) {
	f := newFixture(t, nil)
	if got := f.c.Output(); len(got) != 1 || got[0] != "welcome" {
		t.Fatalf("unexpected initial transcript %q", got)
	}
	if got := f.run("   "); len(got) != 0 {
		t.Fatalf("blank input must print nothing, got %q", got)
	}
}

func TestUnrecognizedCommand(t *testing.T) {
	f := newFixture(t, nil)
	for _, in := range []string{"foo", "HELP me", "sudo", "ls -la"} {
		got := f.run(in)
		want := []string{"> " + in, "Command not recognized: " + in + `. Type "help" for available commands.`}
		if strings.Join(got, "\n") != strings.Join(want, "\n") {
			t.Fatalf("input %q: got %q", in, got)
		}
		if f.c.Mode() != Normal {
			t.Fatalf("unrecognized input changed mode to %v", f.c.Mode())
		}
	}
}

func TestHelpListsPublicCommandsAligned(t *testing.T) {
	f := newFixture(t, nil)
	got := f.run("  Help ")
	if got[0] != ">   Help " || got[1] != "Available commands:" {
		t.Fatalf("unexpected help header %q", got[:2])
	}
	lines := got[2:]
	names := Commands()
	if len(lines) != len(names) {
		t.Fatalf("expected %d command lines, got %d", len(names), len(lines))
	}
	col := strings.Index(lines[0], " : ")
	for i, line := range lines {
		if !strings.HasPrefix(line, "- "+names[i]) {
			t.Fatalf("line %d %q does not list %q", i, line, names[i])
		}
		if strings.Index(line, " : ") != col {
			t.Fatalf("line %q is not aligned to column %d", line, col)
		}
		if strings.Contains(line, "sudo") {
			t.Fatalf("hidden command leaked into help: %q", line)
		}
	}
	if lines[3] != "- sub-projects : Navigate to a specific project (numbered list)" {
		t.Fatalf("unexpected sub-projects line %q", lines[3])
	}
	if lines[0] != "- help         : Show this help message" {
		t.Fatalf("unexpected help line %q", lines[0])
	}
}

func TestNavigationCommands(t *testing.T) {
	cases := []struct {
		in, path, msg string
	}{
		{"about", "/", "Navigating to About page..."},
		{"PROJECTS", "/projects", "Navigating to Projects page..."},
		{"contact", "/contact", "Navigating to Contact page..."},
		{" resume", "/resume", "Navigating to Resume page..."},
	}
	for _, tc := range cases {
		f := newFixture(t, nil)
		got := f.run(tc.in)
		if f.nav.last() != tc.path {
			t.Fatalf("%q navigated to %q, want %q", tc.in, f.nav.last(), tc.path)
		}
		if len(got) != 2 || got[1] != tc.msg {
			t.Fatalf("%q printed %q", tc.in, got)
		}
	}
}

func TestExitClosesAndKeepsState(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Open()
	f.run("sub-projects")
	f.c.Close()
	f.c.Open()
	if f.c.Mode() != AwaitingProjectSelection {
		t.Fatalf("reopening reset mode to %v", f.c.Mode())
	}

	f.run("clear")
	got := f.run("exit")
	if f.c.IsOpen() {
		t.Fatalf("exit left the terminal open")
	}
	if got[len(got)-1] != "Terminal closed." {
		t.Fatalf("unexpected exit output %q", got)
	}
	transcript := f.c.Output()
	f.c.Toggle()
	if !f.c.IsOpen() || strings.Join(f.c.Output(), "\n") != strings.Join(transcript, "\n") {
		t.Fatalf("toggle must reopen with the transcript intact")
	}
}

func TestEscape(t *testing.T) {
	f := newFixture(t, nil)
	if f.c.Escape() {
		t.Fatalf("escape on a closed terminal must not report handling")
	}
	f.c.Open()
	if !f.c.Escape() || f.c.IsOpen() {
		t.Fatalf("escape must close an open terminal")
	}
}

func TestClearFromEveryMode(t *testing.T) {
	setups := map[string][]string{
		"normal":    {"help"},
		"password":  {"sudo access-all", "wrong"},
		"selection": {"sub-projects"},
		"granted":   {"sudo access-all", password},
	}
	for name, lines := range setups {
		f := newFixture(t, nil)
		for _, l := range lines {
			f.run(l)
		}
		f.c.Submit("  CLEAR ")
		if len(f.c.Output()) != 0 {
			t.Fatalf("%s: clear left %q", name, f.c.Output())
		}
		if f.c.Mode() != Normal || f.c.Attempts() != 0 {
			t.Fatalf("%s: clear left mode=%v attempts=%d", name, f.c.Mode(), f.c.Attempts())
		}
	}
}

func TestTabCompletion(t *testing.T) {
	f := newFixture(t, nil)

	if got := f.c.Complete("p"); got != "projects" {
		t.Fatalf("p completed to %q", got)
	}
	if got := f.c.Complete("  Ab"); got != "about" {
		t.Fatalf("Ab completed to %q", got)
	}

	before := len(f.c.Output())
	if got := f.c.Complete("c"); got != "c" {
		t.Fatalf("ambiguous prefix changed input to %q", got)
	}
	added := f.c.Output()[before:]
	if len(added) != 2 || added[0] != "> c" || added[1] != "contact  clear" {
		t.Fatalf("unexpected candidates %q", added)
	}

	before = len(f.c.Output())
	if got := f.c.Complete("zz"); got != "zz" || len(f.c.Output()) != before {
		t.Fatalf("no match must do nothing")
	}
	if got := f.c.Complete("   "); got != "   " || len(f.c.Output()) != before {
		t.Fatalf("blank input must do nothing")
	}
	if got := f.c.Complete("sudo"); got != "sudo" {
		t.Fatalf("hidden command must not complete, got %q", got)
	}
}

func TestTabCompletionOnlyInNormalMode(t *testing.T) {
	f := newFixture(t, nil)
	f.run("sub-projects")
	before := len(f.c.Output())
	if got := f.c.Complete("h"); got != "h" || len(f.c.Output()) != before {
		t.Fatalf("completion ran during project selection")
	}
}

func TestSubProjectsListing(t *testing.T) {
	f := newFixture(t, nil)
	got := f.run("sub-projects")
	want := []string{
		"> sub-projects",
		"Select a project:",
		"1. Autonomous Navigation System",
		"2. Precision Robotic Arm Controller",
		"3. Multi-Drone Coordination System",
		"4. Advanced Machine Vision System",
		"5. Assistive Exoskeleton Design",
		"",
		"Enter a number to navigate, or type 'random' for a random project.",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected listing:\n%s", strings.Join(got, "\n"))
	}
	if f.c.Mode() != AwaitingProjectSelection {
		t.Fatalf("expected selection mode, got %v", f.c.Mode())
	}

	got = f.run("2")
	if f.nav.last() != "/projects/arm-control" || got[1] != "Navigating to Precision Robotic Arm Controller..." {
		t.Fatalf("selection went to %q with %q", f.nav.last(), got)
	}
	if f.c.Mode() != Normal {
		t.Fatalf("valid selection must return to normal, got %v", f.c.Mode())
	}
}

func TestInvalidSelectionStaysInMode(t *testing.T) {
	f := newFixture(t, nil)
	f.run("sub-projects")
	for _, in := range []string{"0", "6", "-1", "two", "", "1.5", "2abc"} {
		got := f.run(in)
		want := "Invalid selection. Please enter a number between 1 and 5, or type 'random'."
		if len(got) != 2 || got[1] != want {
			t.Fatalf("input %q printed %q", in, got)
		}
		if f.c.Mode() != AwaitingProjectSelection {
			t.Fatalf("input %q left selection mode", in)
		}
	}
	if len(f.nav.paths) != 0 {
		t.Fatalf("invalid input navigated to %v", f.nav.paths)
	}
}

func TestUngatedRandomNeverPicksTerminalHidden(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		f := newFixture(t, nil)
		f.c.rand = rand.New(rand.NewPCG(seed, seed*31+7))
		f.run("sub-projects")
		got := f.run(" Random ")
		id := strings.TrimPrefix(f.nav.last(), "/projects/")
		p, err := f.c.catalog.Get(id)
		if err != nil {
			t.Fatalf("random navigated to unknown %q", f.nav.last())
		}
		if !p.InTerminal() {
			t.Fatalf("seed %d picked terminal-hidden project %q", seed, id)
		}
		if got[1] != "Navigating to random project: "+p.Title+"..." {
			t.Fatalf("unexpected random output %q", got)
		}
		if f.c.Mode() != Normal {
			t.Fatalf("random must return to normal")
		}
	}
}

func TestRandomWithEmptyPool(t *testing.T) {
	cat, err := project.New([]project.Project{
		{ID: "hidden", Title: "Hidden", ShowInTerminal: project.Bool(false)},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	f := newFixture(t, cat)
	f.run("sub-projects")
	got := f.run("random")
	if got[1] != "No projects available for random selection." {
		t.Fatalf("unexpected output %q", got)
	}
	if len(f.nav.paths) != 0 {
		t.Fatalf("empty pool navigated to %v", f.nav.paths)
	}
	if f.c.Mode() != Normal {
		t.Fatalf("expected normal mode, got %v", f.c.Mode())
	}
}

func TestPasswordEchoIsMasked(t *testing.T) {
	f := newFixture(t, nil)
	got := f.run("sudo access-all")
	if got[1] != "Enter password:" || f.c.Mode() != AwaitingPassword || !f.c.Masked() {
		t.Fatalf("sudo did not enter the password gate: %q", got)
	}
	got = f.run("pässwörd")
	if got[0] != "> ••••••••" {
		t.Fatalf("password echo not masked per rune: %q", got[0])
	}
	if strings.Contains(strings.Join(f.c.Output(), "\n"), "pässwörd") {
		t.Fatalf("password leaked into transcript")
	}
}

func TestWrongPasswordCountsAttempts(t *testing.T) {
	f := newFixture(t, nil)
	f.run("sudo access-all")
	for n := 1; n <= 2; n++ {
		got := f.run("nope")
		want := "Incorrect password. Attempt " + string(rune('0'+n)) + "/3. Try again:"
		if got[1] != want {
			t.Fatalf("attempt %d printed %q", n, got)
		}
		if f.c.Attempts() != n || f.c.Mode() != AwaitingPassword {
			t.Fatalf("attempt %d: attempts=%d mode=%v", n, f.c.Attempts(), f.c.Mode())
		}
	}
}

func TestThreeFailuresLockOut(t *testing.T) {
	f := newFixture(t, nil)
	bus := events.New()
	f.c.bus = bus
	var announced int
	bus.Subscribe(events.TopicLockoutChanged, func() { announced++ })

	f.run("sudo access-all")
	f.run("a")
	f.run("b")
	got := f.run("c")
	want := []string{"> •", "Access denied. Too many failed attempts.", "This command is locked for 10 minutes."}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected lockout output %q", got)
	}
	if f.c.Mode() != Normal || f.c.Attempts() != 0 {
		t.Fatalf("lockout left mode=%v attempts=%d", f.c.Mode(), f.c.Attempts())
	}
	if announced != 1 {
		t.Fatalf("expected one lockout announcement, got %d", announced)
	}
	raw, err := f.kv.Get(lockout.Key)
	if err != nil || raw != "1746101400000" {
		t.Fatalf("lockout record %q, %v", raw, err)
	}

	f.now = f.now.Add(3*time.Minute + 10*time.Second)
	got = f.run("sudo access-all")
	if got[1] != "Access temporarily locked. Please try again in 7 minutes." {
		t.Fatalf("unexpected refusal %q", got)
	}
	if f.c.Mode() != Normal || f.c.Attempts() != 0 {
		t.Fatalf("refusal changed state")
	}

	f.now = f.now.Add(6 * time.Minute)
	got = f.run("sudo access-all")
	if got[1] != "Access temporarily locked. Please try again in 1 minute." {
		t.Fatalf("unexpected singular refusal %q", got)
	}

	f.now = f.now.Add(time.Minute)
	got = f.run("sudo access-all")
	if got[1] != "Enter password:" {
		t.Fatalf("expired lockout still refused: %q", got)
	}
	if _, err := f.kv.Get(lockout.Key); err != store.ErrNotFound {
		t.Fatalf("expired record not cleared: %v", err)
	}
}

func TestLockoutSharedAcrossSessions(t *testing.T) {
	f := newFixture(t, nil)
	if _, err := f.lock.Lock(lockout.Duration); err != nil {
		t.Fatalf("lock: %v", err)
	}
	other := New(Options{Catalog: f.c.catalog, Verifier: f.c.verifier, Lockout: f.lock})
	other.Submit("sudo access-all")
	out := other.Output()
	if out[len(out)-1] != "Access temporarily locked. Please try again in 10 minutes." {
		t.Fatalf("second session ignored the lockout: %q", out)
	}
	if st := other.Snapshot(); st.LockedMinutes != 10 {
		t.Fatalf("snapshot locked minutes = %d", st.LockedMinutes)
	}
}

func TestCorrectPasswordAfterFailures(t *testing.T) {
	for prior := 0; prior <= 2; prior++ {
		f := newFixture(t, nil)
		f.run("sudo access-all")
		for i := 0; i < prior; i++ {
			f.run("wrong")
		}
		f.run("  " + password + "  ")
		if f.c.Mode() != AwaitingProjectSelection {
			t.Fatalf("%d prior failures: mode %v", prior, f.c.Mode())
		}
		if f.c.Attempts() != 0 {
			t.Fatalf("%d prior failures: attempts %d", prior, f.c.Attempts())
		}
	}
}

func TestGroupedListing(t *testing.T) {
	f := newFixture(t, nil)
	f.run("sudo access-all")
	got := f.run(password)
	want := []string{
		"> ••••••••••",
		"Access granted. Listing all projects (including hidden):",
		"",
		"URL-ONLY (hidden from both terminal and projects page):",
		"  1. Rubik's Cube Solving Robot",
		"",
		"TERMINAL-ONLY (hidden from projects page):",
		"  2. Assistive Exoskeleton Design",
		"",
		"PUBLIC-ONLY (hidden from terminal):",
		"  3. Haptic Teleoperation Interface",
		"",
		"PUBLIC & TERMINAL (visible everywhere):",
		"  4. Autonomous Navigation System",
		"  5. Precision Robotic Arm Controller",
		"  6. Multi-Drone Coordination System",
		"  7. Advanced Machine Vision System",
		"",
		"Enter a number to navigate to any project.",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected grouped listing:\n%s", strings.Join(got, "\n"))
	}

	f.run("1")
	if f.nav.last() != "/projects/rubiks-cube-robot" {
		t.Fatalf("index 1 resolved to %q, want the first url-only project", f.nav.last())
	}
}

func TestGroupedSelectionIgnoresTranscript(t *testing.T) {
	f := newFixture(t, nil)
	f.run("sudo access-all")
	f.run(password)
	f.run("8")
	if f.c.Mode() != AwaitingProjectSelection {
		t.Fatalf("out of range left selection")
	}
	f.run("3")
	if f.nav.last() != "/projects/teleoperation" {
		t.Fatalf("index 3 resolved to %q", f.nav.last())
	}

	// A later ungated listing must not inherit the grouped order even though
	// the transcript still shows it.
	f.run("sub-projects")
	f.run("1")
	if f.nav.last() != "/projects/autonomous-nav" {
		t.Fatalf("ungated index 1 resolved to %q", f.nav.last())
	}
}

func TestGroupedRandomUsesRandomEligibility(t *testing.T) {
	seen := map[string]bool{}
	for seed := uint64(0); seed < 200; seed++ {
		f := newFixture(t, nil)
		f.c.rand = rand.New(rand.NewPCG(seed, 99))
		f.run("sudo access-all")
		f.run(password)
		f.run("random")
		seen[strings.TrimPrefix(f.nav.last(), "/projects/")] = true
	}
	for _, id := range []string{"drone-swarm", "rubiks-cube-robot"} {
		if seen[id] {
			t.Fatalf("random picked ineligible %q", id)
		}
	}
	if !seen["teleoperation"] {
		t.Fatalf("random never picked the explicitly eligible teleoperation project: %v", seen)
	}
}

func TestAttachDetach(t *testing.T) {
	f := newFixture(t, nil)
	bus := events.New()

	f.c.Attach(bus)
	f.c.Attach(bus)
	if n := bus.Len(events.TopicOpenTerminal); n != 1 {
		t.Fatalf("re-attaching must not duplicate handlers, have %d", n)
	}
	bus.Publish(events.TopicOpenTerminal)
	if !f.c.IsOpen() {
		t.Fatalf("open event did not open the terminal")
	}

	f.c.Close()
	f.c.Detach()
	if n := bus.Publish(events.TopicOpenTerminal); n != 0 || f.c.IsOpen() {
		t.Fatalf("detached terminal still reacts to open events")
	}
}

func TestSnapshotHidesPasswordInput(t *testing.T) {
	f := newFixture(t, nil)
	f.run("sudo access-all")
	f.c.SetInput("secret")
	st := f.c.Snapshot()
	if !st.Masked || st.Input != "" || st.Mode != "awaiting-password" {
		t.Fatalf("unexpected snapshot %+v", st)
	}
	f.c.Enter()
	if f.c.Input() != "" || f.c.Attempts() != 1 {
		t.Fatalf("enter did not submit the input")
	}
}

func TestEnterSubmitsInput(t *testing.T) {
	f := newFixture(t, nil)
	f.c.SetInput(f.c.Complete("ab"))
	f.c.Enter()
	if f.nav.last() != "/" {
		t.Fatalf("completed command did not run, navigated to %q", f.nav.last())
	}
}
