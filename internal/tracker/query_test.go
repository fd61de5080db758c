package tracker

import (
	"testing"
	"time"

	"github.com/rosterhq/roster/internal/task"
)

func TestList_DefaultShowsOpenOnly(t *testing.T) {
	tr := testTracker(t)
	open := mustAdd(t, tr, "open one")
	done := mustAdd(t, tr, "done one")
	if _, _, err := tr.Done(done.ID, "a"); err != nil {
		t.Fatal(err)
	}
	gone := mustAdd(t, tr, "archived one")
	if _, _, err := tr.Archive(gone.ID, "a"); err != nil {
		t.Fatal(err)
	}

	got, err := tr.List(Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != open.ID {
		t.Fatalf("default list wrong: %v", got)
	}

	all, err := tr.List(Filter{All: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 with All, got %d", len(all))
	}
}

func TestList_StatusAndPriorityFilters(t *testing.T) {
	tr := testTracker(t)
	hi, _, err := tr.Add(AddRequest{Title: "urgent thing", Priority: task.PriorityHigh, Actor: "a"})
	if err != nil {
		t.Fatal(err)
	}
	mustAdd(t, tr, "plain thing")

	p := task.PriorityHigh
	got, err := tr.List(Filter{Priority: &p})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != hi.ID {
		t.Fatalf("priority filter wrong: %v", got)
	}

	claimed := mustAdd(t, tr, "claimed thing")
	if _, _, err := tr.Claim(claimed.ID, "alice"); err != nil {
		t.Fatal(err)
	}
	got, err = tr.List(Filter{Status: task.StatusPending})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != claimed.ID {
		t.Fatalf("status filter wrong: %v", got)
	}
}

func TestList_ClaimedByAndUnclaimed(t *testing.T) {
	tr := testTracker(t)
	mine := mustAdd(t, tr, "mine")
	free := mustAdd(t, tr, "free")
	if _, _, err := tr.Claim(mine.ID, "alice"); err != nil {
		t.Fatal(err)
	}

	got, err := tr.List(Filter{ClaimedBy: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("claimed-by filter wrong: %v", got)
	}

	got, err = tr.List(Filter{Unclaimed: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != free.ID {
		t.Fatalf("unclaimed filter wrong: %v", got)
	}
}

func TestList_ReadyExcludesBlocked(t *testing.T) {
	tr := testTracker(t)
	dep := mustAdd(t, tr, "prerequisite")
	blocked, _, err := tr.Add(AddRequest{Title: "waits", DependsOn: []string{dep.ID}, Actor: "a"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := tr.List(Filter{Ready: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range got {
		if r.ID == blocked.ID {
			t.Fatal("ready filter returned a blocked task")
		}
	}

	if _, _, err := tr.Done(dep.ID, "a"); err != nil {
		t.Fatal(err)
	}
	got, err = tr.List(Filter{Ready: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != blocked.ID {
		t.Fatalf("task should be ready after dependency done: %v", got)
	}
}

func TestList_Search(t *testing.T) {
	tr := testTracker(t)
	hit, _, err := tr.Add(AddRequest{Title: "Fix OAuth redirect", Tags: []string{"auth"}, Actor: "a"})
	if err != nil {
		t.Fatal(err)
	}
	mustAdd(t, tr, "Unrelated chore")

	got, err := tr.List(Filter{Search: "oauth"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != hit.ID {
		t.Fatalf("search by title failed: %v", got)
	}

	got, err = tr.List(Filter{Search: "auth"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("search should also cover tags: %v", got)
	}
}

func TestList_SortByDue(t *testing.T) {
	tr := testTracker(t)
	later := time.Now().Add(72 * time.Hour)
	sooner := time.Now().Add(24 * time.Hour)

	a, _, err := tr.Add(AddRequest{Title: "later", DueAt: &later, Actor: "x"})
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := tr.Add(AddRequest{Title: "sooner", DueAt: &sooner, Actor: "x"})
	if err != nil {
		t.Fatal(err)
	}
	mustAdd(t, tr, "no due date")

	got, err := tr.List(Filter{Sort: "due"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
	if got[0].ID != b.ID || got[1].ID != a.ID {
		t.Fatalf("due sort wrong: %s then %s", got[0].Title, got[1].Title)
	}
	if got[2].DueAt != nil {
		t.Fatal("undated task should sort last")
	}
}

func TestStats(t *testing.T) {
	tr := testTracker(t)
	mustAdd(t, tr, "backlog item")
	claimed := mustAdd(t, tr, "claimed item")
	if _, _, err := tr.Claim(claimed.ID, "alice"); err != nil {
		t.Fatal(err)
	}
	finished := mustAdd(t, tr, "finished item")
	if _, _, err := tr.Done(finished.ID, "bob"); err != nil {
		t.Fatal(err)
	}

	past := time.Now().Add(-24 * time.Hour)
	if _, _, err := tr.Add(AddRequest{Title: "late item", DueAt: &past, Actor: "a"}); err != nil {
		t.Fatal(err)
	}

	st, err := tr.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Backlog != 2 || st.Pending != 1 || st.Completed != 1 {
		t.Fatalf("counts wrong: %+v", st)
	}
	if st.Claimed != 1 {
		t.Fatalf("claimed count wrong: %d", st.Claimed)
	}
	if st.Overdue != 1 {
		t.Fatalf("overdue count wrong: %d", st.Overdue)
	}
	if st.CompletedToday != 1 {
		t.Fatalf("completed-today count wrong: %d", st.CompletedToday)
	}
}

func TestStats_OverdueNotCountedAsUpcoming(t *testing.T) {
	tr := testTracker(t)

	past := time.Now().Add(-48 * time.Hour)
	if _, _, err := tr.Add(AddRequest{Title: "already late", DueAt: &past, Actor: "a"}); err != nil {
		t.Fatal(err)
	}
	soon := time.Now().Add(3 * 24 * time.Hour)
	if _, _, err := tr.Add(AddRequest{Title: "due friday", DueAt: &soon, Actor: "a"}); err != nil {
		t.Fatal(err)
	}

	st, err := tr.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Overdue != 1 {
		t.Fatalf("overdue count wrong: %d", st.Overdue)
	}
	// The late task belongs under Overdue only, not the week ahead.
	if st.DueThisWeek != 1 {
		t.Fatalf("due-this-week count wrong: %d", st.DueThisWeek)
	}
	if st.DueToday != 0 {
		t.Fatalf("due-today count wrong: %d", st.DueToday)
	}
}

func TestVerify_HealthyStore(t *testing.T) {
	tr := testTracker(t)
	tk := mustAdd(t, tr, "verified")
	if _, _, err := tr.Claim(tk.ID, "alice"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := tr.Comment(tk.ID, "alice", "note"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := tr.Done(tk.ID, "alice"); err != nil {
		t.Fatal(err)
	}

	rep, err := tr.Verify()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !rep.OK() {
		t.Fatalf("healthy store reported divergent tasks: %v", rep.Divergent)
	}
	if rep.Events != 4 {
		t.Fatalf("expected 4 events, got %d", rep.Events)
	}
}
