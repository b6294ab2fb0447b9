package session

import (
	"errors"
	"testing"
)

const userID = int64(1001)

func TestBeginResetsAndReturnsStaleBanner(t *testing.T) {
	st := NewStore()

	if stale := st.Begin(userID); stale != "" {
		t.Errorf("first Begin returned stale banner %q, want empty", stale)
	}
	if err := st.AcceptBanner(userID, "/tmp/banner-1.jpg"); err != nil {
		t.Fatalf("AcceptBanner: %v", err)
	}

	stale := st.Begin(userID)
	if stale != "/tmp/banner-1.jpg" {
		t.Errorf("Begin returned %q, want previous banner path", stale)
	}
	if got := st.State(userID); got != WaitingBanner {
		t.Errorf("state = %s, want waiting_banner", got)
	}
	if got := st.BannerPath(userID); got != "" {
		t.Errorf("banner path = %q, want cleared", got)
	}
}

func TestBeginIsIdempotent(t *testing.T) {
	st := NewStore()
	st.Begin(userID)
	stale := st.Begin(userID)

	if stale != "" {
		t.Errorf("second Begin returned stale banner %q, want empty", stale)
	}
	if got := st.State(userID); got != WaitingBanner {
		t.Errorf("state after double Begin = %s, want waiting_banner", got)
	}
}

func TestAcceptBannerRequiresWaitingBanner(t *testing.T) {
	st := NewStore()

	err := st.AcceptBanner(userID, "/tmp/banner.jpg")
	var wrong *WrongStateError
	if !errors.As(err, &wrong) {
		t.Fatalf("AcceptBanner in idle state: err = %v, want *WrongStateError", err)
	}
	if wrong.Current != Idle {
		t.Errorf("wrong state error reports %s, want idle", wrong.Current)
	}
}

func TestBeginJobAcceptance(t *testing.T) {
	st := NewStore()
	st.Begin(userID)
	if err := st.AcceptBanner(userID, "/tmp/banner.jpg"); err != nil {
		t.Fatalf("AcceptBanner: %v", err)
	}

	banner, err := st.BeginJob(userID)
	if err != nil {
		t.Fatalf("BeginJob: %v", err)
	}
	if banner != "/tmp/banner.jpg" {
		t.Errorf("BeginJob banner = %q, want stored path", banner)
	}
	if got := st.State(userID); got != Processing {
		t.Errorf("state = %s, want processing", got)
	}
	if !st.Busy(userID) {
		t.Error("expected busy after BeginJob")
	}
}

func TestBeginJobRejections(t *testing.T) {
	t.Run("wrong state", func(t *testing.T) {
		st := NewStore()
		st.Begin(userID) // WaitingBanner, no video expected yet

		_, err := st.BeginJob(userID)
		var wrong *WrongStateError
		if !errors.As(err, &wrong) {
			t.Fatalf("err = %v, want *WrongStateError", err)
		}
	})

	t.Run("busy rejects without touching state", func(t *testing.T) {
		st := NewStore()
		st.Begin(userID)
		if err := st.AcceptBanner(userID, "/tmp/banner.jpg"); err != nil {
			t.Fatalf("AcceptBanner: %v", err)
		}
		if _, err := st.BeginJob(userID); err != nil {
			t.Fatalf("first BeginJob: %v", err)
		}

		_, err := st.BeginJob(userID)
		if !errors.Is(err, ErrBusy) {
			t.Fatalf("second BeginJob err = %v, want ErrBusy", err)
		}
		if !st.Busy(userID) {
			t.Error("busy flag changed by rejected job")
		}
		if got := st.BannerPath(userID); got != "/tmp/banner.jpg" {
			t.Errorf("banner path changed by rejected job: %q", got)
		}
	})
}

func TestFinishJobResetsSession(t *testing.T) {
	st := NewStore()
	st.Begin(userID)
	if err := st.AcceptBanner(userID, "/tmp/banner.jpg"); err != nil {
		t.Fatalf("AcceptBanner: %v", err)
	}
	if _, err := st.BeginJob(userID); err != nil {
		t.Fatalf("BeginJob: %v", err)
	}

	banner := st.FinishJob(userID)
	if banner != "/tmp/banner.jpg" {
		t.Errorf("FinishJob banner = %q, want stored path", banner)
	}
	if got := st.State(userID); got != Idle {
		t.Errorf("state = %s, want idle", got)
	}
	if st.Busy(userID) {
		t.Error("busy flag still set after FinishJob")
	}
	if got := st.BannerPath(userID); got != "" {
		t.Errorf("banner path = %q, want cleared", got)
	}
}

func TestSessionsAreIndependentPerUser(t *testing.T) {
	st := NewStore()
	other := int64(2002)

	st.Begin(userID)
	if err := st.AcceptBanner(userID, "/tmp/a.jpg"); err != nil {
		t.Fatalf("AcceptBanner: %v", err)
	}

	if got := st.State(other); got != Idle {
		t.Errorf("untouched user state = %s, want idle", got)
	}
	if _, err := st.BeginJob(other); err == nil {
		t.Error("BeginJob for idle user succeeded, want rejection")
	}
}
