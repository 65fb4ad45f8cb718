package session

import (
	"errors"
	"testing"

	"github.com/forumhive/gamehub/internal/domain"
)

func publicRoom() domain.RoomSettings {
	return domain.RoomSettings{
		RoomName:        "open table",
		Privacy:         domain.PrivacyPublic,
		AllowSpectators: true,
	}
}

// startedGame returns a connection game with both seats filled: "alice" on
// seat one (red, to move first) and "bob" on seat two.
func startedGame(t *testing.T, room domain.RoomSettings) *ConnectionGame {
	t.Helper()
	g := NewConnectionGame("game-1", "alice", room)
	if _, err := g.Join("alice"); err != nil {
		t.Fatalf("alice join: %v", err)
	}
	model, err := g.Join("bob")
	if err != nil {
		t.Fatalf("bob join: %v", err)
	}
	if model.Status != domain.StatusInProgress {
		t.Fatalf("expected in progress after second join, got %s", model.Status)
	}
	return g
}

func TestConnectionGameJoinTransitions(t *testing.T) {
	g := NewConnectionGame("game-1", "alice", publicRoom())

	model, err := g.Join("alice")
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	if model.Status != domain.StatusWaiting {
		t.Errorf("one seated player must keep the session waiting, got %s", model.Status)
	}

	if _, err := g.Join("alice"); !errors.Is(err, ErrAlreadyInGame) {
		t.Errorf("rejoining identity: expected ErrAlreadyInGame, got %v", err)
	}

	model, err = g.Join("bob")
	if err != nil {
		t.Fatalf("second join: %v", err)
	}
	if model.Status != domain.StatusInProgress {
		t.Errorf("second seat must start the game, got %s", model.Status)
	}
	if model.CurrentTurn != "alice" {
		t.Errorf("seat one moves first, got %q", model.CurrentTurn)
	}

	if _, err := g.Join("carol"); !errors.Is(err, ErrJoinClosed) {
		t.Errorf("joining a started game: expected ErrJoinClosed, got %v", err)
	}
}

func TestConnectionGameRoomCodeGeneration(t *testing.T) {
	public := NewConnectionGame("g1", "alice", publicRoom())
	if code := public.Room().RoomCode; code != "" {
		t.Errorf("public room must have no code, got %q", code)
	}

	private := NewConnectionGame("g2", "alice", domain.RoomSettings{
		RoomName: "hidden",
		Privacy:  domain.PrivacyPrivate,
	})
	if private.Room().RoomCode == "" {
		t.Error("private room must get a generated code")
	}

	preset := NewConnectionGame("g3", "alice", domain.RoomSettings{
		RoomName: "hidden",
		Privacy:  domain.PrivacyPrivate,
		RoomCode: "XY12Z9",
	})
	if preset.Room().RoomCode != "XY12Z9" {
		t.Errorf("preset code must be kept, got %q", preset.Room().RoomCode)
	}
}

func TestConnectionGameTurnAlternation(t *testing.T) {
	g := startedGame(t, publicRoom())

	players := []string{"alice", "bob"}
	for i := 0; i < 6; i++ {
		mover := players[i%2]
		model, err := g.ApplyMove(mover, domain.Move{Column: i % domain.Columns})
		if err != nil {
			t.Fatalf("move %d by %s: %v", i, mover, err)
		}
		if model.TotalMoves != i+1 {
			t.Errorf("move %d: TotalMoves = %d, want %d", i, model.TotalMoves, i+1)
		}
		if len(model.Moves) != model.TotalMoves {
			t.Errorf("move log length %d diverged from TotalMoves %d", len(model.Moves), model.TotalMoves)
		}
		next := players[(i+1)%2]
		if model.CurrentTurn != next {
			t.Errorf("after move %d turn = %q, want %q", i, model.CurrentTurn, next)
		}
	}
}

func TestConnectionGameRejectsOutOfTurnAndOutsiders(t *testing.T) {
	g := startedGame(t, publicRoom())

	if _, err := g.ApplyMove("bob", domain.Move{Column: 0}); !errors.Is(err, domain.ErrNotYourTurn) {
		t.Errorf("expected ErrNotYourTurn, got %v", err)
	}
	if _, err := g.ApplyMove("mallory", domain.Move{Column: 0}); !errors.Is(err, ErrNotInGame) {
		t.Errorf("expected ErrNotInGame, got %v", err)
	}
	if _, err := g.ApplyMove("alice", domain.Move{Column: domain.Columns}); !errors.Is(err, domain.ErrInvalidMove) {
		t.Errorf("expected ErrInvalidMove for out-of-range column, got %v", err)
	}
}

func TestConnectionGameFullColumnRejectsWithoutStateChange(t *testing.T) {
	g := startedGame(t, publicRoom())

	// alternate drops into column 3 until its six rows are filled
	players := []string{"alice", "bob"}
	for i := 0; i < domain.Rows; i++ {
		if _, err := g.ApplyMove(players[i%2], domain.Move{Column: 3}); err != nil {
			t.Fatalf("fill move %d: %v", i, err)
		}
	}

	before := g.ExportModel()
	_, err := g.ApplyMove("alice", domain.Move{Column: 3})
	if !errors.Is(err, domain.ErrColumnFull) {
		t.Fatalf("seventh drop: expected ErrColumnFull, got %v", err)
	}

	after := g.ExportModel()
	if after.TotalMoves != before.TotalMoves {
		t.Errorf("rejected move changed TotalMoves: %d -> %d", before.TotalMoves, after.TotalMoves)
	}
	if after.Status != domain.StatusInProgress {
		t.Errorf("rejected move changed status to %s", after.Status)
	}
	if after.CurrentTurn != "alice" {
		t.Errorf("rejected move consumed the turn, now %q", after.CurrentTurn)
	}
}

func TestConnectionGameHorizontalWin(t *testing.T) {
	g := startedGame(t, publicRoom())

	// alice builds columns 0..3 on the bottom row, bob stacks on column 6
	moves := []struct {
		identity string
		column   int
	}{
		{"alice", 0}, {"bob", 6},
		{"alice", 1}, {"bob", 6},
		{"alice", 2}, {"bob", 6},
	}
	for _, m := range moves {
		if _, err := g.ApplyMove(m.identity, domain.Move{Column: m.column}); err != nil {
			t.Fatalf("move %+v: %v", m, err)
		}
	}

	model, err := g.ApplyMove("alice", domain.Move{Column: 3})
	if err != nil {
		t.Fatalf("winning move: %v", err)
	}
	if model.Status != domain.StatusOver {
		t.Fatalf("expected over, got %s", model.Status)
	}
	if len(model.Winners) != 1 || model.Winners[0] != "alice" {
		t.Errorf("winners = %v, want [alice]", model.Winners)
	}
	if len(model.WinningPositions) != 4 {
		t.Errorf("winning positions = %v, want 4 cells", model.WinningPositions)
	}
	for _, pos := range model.WinningPositions {
		if pos.Row != domain.Rows-1 {
			t.Errorf("winning cell %+v not on the bottom row", pos)
		}
	}

	if _, err := g.ApplyMove("bob", domain.Move{Column: 0}); !errors.Is(err, domain.ErrNotInProgress) {
		t.Errorf("move after game over: expected ErrNotInProgress, got %v", err)
	}
}

func TestConnectionGameVerticalWin(t *testing.T) {
	g := startedGame(t, publicRoom())

	moves := []struct {
		identity string
		column   int
	}{
		{"alice", 0}, {"bob", 1},
		{"alice", 0}, {"bob", 1},
		{"alice", 0}, {"bob", 2},
	}
	for _, m := range moves {
		if _, err := g.ApplyMove(m.identity, domain.Move{Column: m.column}); err != nil {
			t.Fatalf("move %+v: %v", m, err)
		}
	}

	model, err := g.ApplyMove("alice", domain.Move{Column: 0})
	if err != nil {
		t.Fatalf("winning move: %v", err)
	}
	if model.Status != domain.StatusOver || len(model.Winners) != 1 || model.Winners[0] != "alice" {
		t.Errorf("expected alice to win vertically, got status=%s winners=%v", model.Status, model.Winners)
	}
}

// drawBoard is a full board with no four-in-a-row anywhere, minus the
// top-left cell.
func drawBoard() [][]domain.Cell {
	rows := [domain.Rows]string{
		".RYRYRY",
		"YRYRYRY",
		"RYRYRYR",
		"YRYRYRY",
		"YRYRYRY",
		"RYRYRYR",
	}
	board := domain.NewBoard()
	for r, line := range rows {
		for c, ch := range line {
			switch ch {
			case 'R':
				board[r][c] = domain.Red
			case 'Y':
				board[r][c] = domain.Yellow
			}
		}
	}
	return board
}

func TestConnectionGameDrawOnFullBoard(t *testing.T) {
	g := startedGame(t, publicRoom())

	g.mu.Lock()
	g.board = drawBoard()
	g.turn = 1 // bob (yellow) completes the board
	g.mu.Unlock()

	model, err := g.ApplyMove("bob", domain.Move{Column: 0})
	if err != nil {
		t.Fatalf("final move: %v", err)
	}
	if model.Status != domain.StatusOver {
		t.Fatalf("expected over, got %s", model.Status)
	}
	if model.Winners == nil || len(model.Winners) != 0 {
		t.Errorf("a draw must report an empty winner set, got %v", model.Winners)
	}
	if len(model.WinningPositions) != 0 {
		t.Errorf("a draw must not report winning positions, got %v", model.WinningPositions)
	}
}

func TestConnectionGameLeaveWhileWaitingCompactsSeats(t *testing.T) {
	g := NewConnectionGame("game-1", "alice", publicRoom())
	if _, err := g.Join("alice"); err != nil {
		t.Fatal(err)
	}

	model, err := g.Leave("alice")
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if len(model.Players) != 0 {
		t.Errorf("players = %v, want empty", model.Players)
	}
	if model.Status != domain.StatusWaiting {
		t.Errorf("status = %s, want waiting", model.Status)
	}

	// seat one leaving shifts the remaining player into seat one
	g = NewConnectionGame("game-2", "alice", publicRoom())
	g.mu.Lock()
	g.seats = [2]string{"alice", ""}
	g.players = []string{"alice"}
	g.mu.Unlock()
	if _, err := g.Join("bob"); err != nil {
		t.Fatal(err)
	}
	// the game is in progress now, so rebuild a waiting two-seat state
	g.mu.Lock()
	g.status = domain.StatusWaiting
	g.mu.Unlock()

	if _, err := g.Leave("alice"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	g.mu.Lock()
	seats := g.seats
	g.mu.Unlock()
	if seats[0] != "bob" || seats[1] != "" {
		t.Errorf("seats after compaction = %v, want [bob ]", seats)
	}

	if _, err := g.Leave("mallory"); !errors.Is(err, ErrNotInGame) {
		t.Errorf("leaving without joining: expected ErrNotInGame, got %v", err)
	}
}

func TestConnectionGameLeaveInProgressDeclaresRemainingWinner(t *testing.T) {
	g := startedGame(t, publicRoom())

	model, err := g.Leave("alice")
	if err != nil {
		t.Fatalf("leave: %v", err)
	}
	if model.Status != domain.StatusOver {
		t.Fatalf("expected over, got %s", model.Status)
	}
	if len(model.Winners) != 1 || model.Winners[0] != "bob" {
		t.Errorf("winners = %v, want [bob] (never a draw)", model.Winners)
	}
}

func TestConnectionGameSpectators(t *testing.T) {
	g := startedGame(t, publicRoom())

	model, err := g.AddSpectator("carol")
	if err != nil {
		t.Fatalf("add spectator: %v", err)
	}
	if len(model.Spectators) != 1 || model.Spectators[0] != "carol" {
		t.Errorf("spectators = %v, want [carol]", model.Spectators)
	}

	if _, err := g.AddSpectator("carol"); !errors.Is(err, ErrAlreadySpectating) {
		t.Errorf("expected ErrAlreadySpectating, got %v", err)
	}
	if _, err := g.AddSpectator("alice"); !errors.Is(err, ErrPlayerSpectating) {
		t.Errorf("expected ErrPlayerSpectating for a seated player, got %v", err)
	}

	// removal is idempotent, also for identities that never spectated
	model = g.RemoveSpectator("carol")
	if len(model.Spectators) != 0 {
		t.Errorf("spectators after removal = %v, want empty", model.Spectators)
	}
	model = g.RemoveSpectator("nobody")
	if len(model.Spectators) != 0 {
		t.Errorf("removing an absent spectator must be a no-op, got %v", model.Spectators)
	}
}

func TestConnectionGameSpectatorRefusals(t *testing.T) {
	noSpectators := publicRoom()
	noSpectators.AllowSpectators = false
	g := NewConnectionGame("g1", "alice", noSpectators)
	if _, err := g.AddSpectator("carol"); !errors.Is(err, ErrSpectatorsDisabled) {
		t.Errorf("expected ErrSpectatorsDisabled, got %v", err)
	}

	// private rooms never allow spectators, even with the flag set
	private := domain.RoomSettings{
		RoomName:        "hidden",
		Privacy:         domain.PrivacyPrivate,
		AllowSpectators: true,
	}
	g = NewConnectionGame("g2", "alice", private)
	if _, err := g.AddSpectator("carol"); !errors.Is(err, ErrPrivateSpectating) {
		t.Errorf("expected ErrPrivateSpectating, got %v", err)
	}
}

func TestConnectionGameVerifyAccess(t *testing.T) {
	tests := []struct {
		name    string
		privacy domain.RoomPrivacy
		code    string
		friends []string
		want    bool
	}{
		{"public always", domain.PrivacyPublic, "", nil, true},
		{"public ignores junk code", domain.PrivacyPublic, "WRONG", nil, true},
		{"private with matching code", domain.PrivacyPrivate, "XY12Z9", nil, true},
		{"private with wrong code", domain.PrivacyPrivate, "AAAAAA", nil, false},
		{"private with no code", domain.PrivacyPrivate, "", nil, false},
		{"friends-only with code", domain.PrivacyFriendsOnly, "XY12Z9", nil, true},
		{"friends-only with creator in friends", domain.PrivacyFriendsOnly, "", []string{"alice", "dave"}, true},
		{"friends-only unrelated", domain.PrivacyFriendsOnly, "", []string{"dave"}, false},
		{"friends-only wrong code no friends", domain.PrivacyFriendsOnly, "AAAAAA", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewConnectionGame("g", "alice", domain.RoomSettings{
				RoomName: "room",
				Privacy:  tt.privacy,
				RoomCode: "XY12Z9",
			})
			if got := g.VerifyAccess(tt.code, tt.friends); got != tt.want {
				t.Errorf("VerifyAccess(%q, %v) = %v, want %v", tt.code, tt.friends, got, tt.want)
			}
		})
	}
}

func TestConnectionGamePublicRoomInfoRedactsCode(t *testing.T) {
	private := NewConnectionGame("g1", "alice", domain.RoomSettings{
		RoomName: "hidden",
		Privacy:  domain.PrivacyPrivate,
		RoomCode: "XY12Z9",
	})
	info := private.PublicRoomInfo()
	if info.RoomCode == "XY12Z9" {
		t.Error("private room code leaked through the public listing")
	}
	if info.RoomCode == "" {
		t.Error("private room listing should carry a masked code marker")
	}

	public := NewConnectionGame("g2", "alice", publicRoom())
	if info := public.PublicRoomInfo(); info.RoomCode != "" {
		t.Errorf("public room listing must omit the code field, got %q", info.RoomCode)
	}
}

func TestConnectionGameExportModelIsDetached(t *testing.T) {
	g := startedGame(t, publicRoom())
	if _, err := g.ApplyMove("alice", domain.Move{Column: 0}); err != nil {
		t.Fatal(err)
	}

	model := g.ExportModel()
	model.Board[5][0] = domain.Empty
	model.Players[0] = "intruder"

	fresh := g.ExportModel()
	if fresh.Board[5][0] != domain.Red {
		t.Error("mutating an exported board reached the live session")
	}
	if fresh.Players[0] != "alice" {
		t.Error("mutating an exported player list reached the live session")
	}
}
