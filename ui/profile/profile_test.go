package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ReksiGustio/SimpleWalls/api"
	"github.com/ReksiGustio/SimpleWalls/domain"
	"github.com/ReksiGustio/SimpleWalls/session"
	"github.com/ReksiGustio/SimpleWalls/store"
)

func strPtr(s string) *string { return &s }

func setupFollowTest(t *testing.T, handler http.Handler) (*session.Core, *api.Client) {
	t.Helper()

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.New(srv.URL)
	core := session.New(st, client, time.Minute)
	t.Cleanup(core.Popup().Stop)
	return core, client
}

func TestFollowMergesServerEdge(t *testing.T) {
	edge := domain.Follow{Id: 40, DisplayName: strPtr("Walls"), TargetId: 9}

	mux := http.NewServeMux()
	mux.HandleFunc("/user/follow/9", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"message": "You followed this user", "data": edge})
	})
	mux.HandleFunc("/notification", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"message": "ok"})
	})

	core, client := setupFollowTest(t, mux)
	core.SetUser(domain.User{Id: 3, UserName: "reksi"})

	msg := toggleFollow(core, client, domain.User{Id: 9, UserName: "walls"})()
	if _, ok := msg.(followDoneMsg); !ok {
		t.Fatalf("Expected followDoneMsg, got %T", msg)
	}

	user := core.User()
	if !user.IsFollowing(9) {
		t.Error("Expected server edge merged into the following list")
	}
	if len(user.Following) != 1 || user.Following[0].Id != 40 {
		t.Errorf("Expected the authoritative edge held, got %+v", user.Following)
	}

	// Replaying the merge stays idempotent
	user.Following = domain.MergePage(user.Following, []domain.Follow{edge})
	if len(user.Following) != 1 {
		t.Errorf("Expected no duplicate edge, got %d", len(user.Following))
	}
}

func TestUnfollowRemovesEdge(t *testing.T) {
	edge := domain.Follow{Id: 40, DisplayName: strPtr("Walls"), TargetId: 9}

	mux := http.NewServeMux()
	mux.HandleFunc("/user/follow/9", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Expected DELETE, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"message": "Unfollow successfully", "data": edge})
	})

	core, client := setupFollowTest(t, mux)
	core.SetUser(domain.User{Id: 3, UserName: "reksi", Following: []domain.Follow{edge}})

	msg := toggleFollow(core, client, domain.User{Id: 9, UserName: "walls"})()
	if _, ok := msg.(followDoneMsg); !ok {
		t.Fatalf("Expected followDoneMsg, got %T", msg)
	}

	if core.User().IsFollowing(9) {
		t.Error("Expected edge removed after unfollow")
	}
}

func TestFollowRejectsReplyWithoutEdge(t *testing.T) {
	// A reply that only carries a message must not merge a zero-value edge
	// into the following list
	mux := http.NewServeMux()
	mux.HandleFunc("/user/follow/9", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"You followed this user"}`))
	})

	core, client := setupFollowTest(t, mux)
	core.SetUser(domain.User{Id: 3, UserName: "reksi"})

	msg := toggleFollow(core, client, domain.User{Id: 9, UserName: "walls"})()
	if _, ok := msg.(actionFailedMsg); !ok {
		t.Fatalf("Expected actionFailedMsg, got %T", msg)
	}
	if len(core.User().Following) != 0 {
		t.Errorf("Expected no edge merged, got %+v", core.User().Following)
	}
}

func TestFollowFailureLeavesListUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/follow/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	})

	core, client := setupFollowTest(t, mux)
	core.SetUser(domain.User{Id: 3, UserName: "reksi"})

	msg := toggleFollow(core, client, domain.User{Id: 9})()
	if _, ok := msg.(actionFailedMsg); !ok {
		t.Fatalf("Expected actionFailedMsg, got %T", msg)
	}
	if len(core.User().Following) != 0 {
		t.Error("Expected following list unchanged after failure")
	}
	if text, _ := core.Popup().Message(); text != "Received an unreadable reply from the server" {
		t.Errorf("Expected unreadable-reply popup, got %q", text)
	}
}
