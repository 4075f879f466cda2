package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel_residents/internal/adapters/contacts"
	server "hotel_residents/internal/adapters/http_server"
	"hotel_residents/internal/app"
	"hotel_residents/internal/domain"
	"hotel_residents/internal/hotel"
)

// ---- harness ----

type brokenDir struct{}

var errUpstream = errors.New("contacts service down")

func (brokenDir) CreateContact(context.Context, domain.Contact) (domain.Contact, error) {
	return domain.Contact{}, errUpstream
}
func (brokenDir) GetContacts(context.Context, int64) ([]domain.Contact, error) { return nil, errUpstream }
func (brokenDir) GetAllContacts(context.Context) ([]domain.Contact, error)     { return nil, errUpstream }

func newAPI(t *testing.T, dir domain.ContactDirectory) *httptest.Server {
	t.Helper()
	m := hotel.New()
	cs := app.NewContactService(dir, nil, 0)
	srv := server.New(5 * time.Second)
	srv.MountHandlers(&server.Handlers{
		Hotel:    m,
		Contacts: cs,
		Overview: app.NewOverviewService(m, cs, 4),
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path string, body any, out any) int {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return res.StatusCode
}

type roomResp struct {
	Room domain.Room `json:"room"`
}

type residentResp struct {
	Resident domain.Resident `json:"resident"`
}

func createRoom(t *testing.T, ts *httptest.Server, name string, size int) domain.Room {
	t.Helper()
	var out roomResp
	if code := call(t, ts, "POST", "/rooms", map[string]any{"room_name": name, "price": 50.0, "size": size}, &out); code != 201 {
		t.Fatalf("create room: status %d", code)
	}
	return out.Room
}

func moveIn(t *testing.T, ts *httptest.Server, name string, roomID int64) (int, domain.Resident) {
	t.Helper()
	var out residentResp
	code := call(t, ts, "POST", "/residents", map[string]any{"name": name, "surname": "S", "room_id": roomID}, &out)
	return code, out.Resident
}

// ---- tests ----

func TestSecondMoveIntoSingleRoomIsRejected(t *testing.T) {
	ts := newAPI(t, contacts.NewMemory())
	room := createRoom(t, ts, "single", 1)

	if code, _ := moveIn(t, ts, "Ada", room.ID); code != http.StatusCreated {
		t.Fatalf("first move-in: %d", code)
	}
	if code, _ := moveIn(t, ts, "Alan", room.ID); code != http.StatusUnprocessableEntity {
		t.Fatalf("second move-in: expected 422, got %d", code)
	}
}

func TestDeleteRoomRemovesItsResidents(t *testing.T) {
	ts := newAPI(t, contacts.NewMemory())
	room := createRoom(t, ts, "double", 2)
	other := createRoom(t, ts, "other", 1)
	moveIn(t, ts, "Ada", room.ID)
	moveIn(t, ts, "Alan", room.ID)
	_, grace := moveIn(t, ts, "Grace", other.ID)

	if code := call(t, ts, "DELETE", fmt.Sprintf("/rooms/%d", room.ID), nil, nil); code != 200 {
		t.Fatalf("delete: %d", code)
	}

	var list struct {
		Residents []domain.Resident `json:"residents"`
	}
	call(t, ts, "GET", "/residents", nil, &list)
	if len(list.Residents) != 1 || list.Residents[0].ID != grace.ID {
		t.Fatalf("only Grace should remain: %+v", list.Residents)
	}
	if code := call(t, ts, "DELETE", fmt.Sprintf("/rooms/%d", room.ID), nil, nil); code != 404 {
		t.Fatalf("second delete: expected 404, got %d", code)
	}
}

func TestRoomEndpoints(t *testing.T) {
	ts := newAPI(t, contacts.NewMemory())
	room := createRoom(t, ts, "A", 2)

	var got domain.Room
	if code := call(t, ts, "GET", fmt.Sprintf("/rooms/%d", room.ID), nil, &got); code != 200 || got.Name != "A" {
		t.Fatalf("get room: %d %+v", code, got)
	}
	if code := call(t, ts, "GET", "/rooms/999", nil, nil); code != 404 {
		t.Fatalf("unknown room: expected 404, got %d", code)
	}
	if code := call(t, ts, "GET", "/rooms/abc", nil, nil); code != 400 {
		t.Fatalf("bad id: expected 400, got %d", code)
	}
	if code := call(t, ts, "POST", "/rooms", map[string]any{"room_name": "x"}, nil); code != 400 {
		t.Fatalf("missing fields: expected 400, got %d", code)
	}

	upd := map[string]any{"new_name": "B", "new_price": 70.0, "new_size": 3}
	if code := call(t, ts, "PUT", fmt.Sprintf("/rooms/%d", room.ID), upd, nil); code != 200 {
		t.Fatalf("update empty room: %d", code)
	}
	moveIn(t, ts, "Ada", room.ID)
	if code := call(t, ts, "PUT", fmt.Sprintf("/rooms/%d", room.ID), upd, nil); code != 409 {
		t.Fatalf("update occupied room: expected 409, got %d", code)
	}
	if code := call(t, ts, "PUT", "/rooms/999", upd, nil); code != 404 {
		t.Fatalf("update unknown room: expected 404, got %d", code)
	}

	var list struct {
		Rooms []domain.Room `json:"rooms"`
	}
	call(t, ts, "GET", "/rooms", nil, &list)
	if len(list.Rooms) != 1 || list.Rooms[0].Name != "B" || len(list.Rooms[0].Occupants) != 1 {
		t.Fatalf("unexpected rooms: %+v", list.Rooms)
	}
}

func TestNegativeRoomSizeIsRejected(t *testing.T) {
	ts := newAPI(t, contacts.NewMemory())

	var prob struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	code := call(t, ts, "POST", "/rooms", map[string]any{"room_name": "x", "price": 1.0, "size": -3}, &prob)
	if code != http.StatusBadRequest || prob.Title != "Invalid field values" {
		t.Fatalf("create: expected 400 invalid, got %d %+v", code, prob)
	}
	var list struct {
		Rooms []domain.Room `json:"rooms"`
	}
	call(t, ts, "GET", "/rooms", nil, &list)
	if len(list.Rooms) != 0 {
		t.Fatalf("no room should exist: %+v", list.Rooms)
	}

	room := createRoom(t, ts, "A", 0)
	upd := map[string]any{"new_name": "B", "new_price": 1.0, "new_size": -1}
	if code := call(t, ts, "PUT", fmt.Sprintf("/rooms/%d", room.ID), upd, nil); code != http.StatusBadRequest {
		t.Fatalf("update: expected 400, got %d", code)
	}
	var got domain.Room
	call(t, ts, "GET", fmt.Sprintf("/rooms/%d", room.ID), nil, &got)
	if got.Size != 0 || got.Name != "A" {
		t.Fatalf("room must be unchanged: %+v", got)
	}
}

func TestResidentEndpoints(t *testing.T) {
	ts := newAPI(t, contacts.NewMemory())
	a := createRoom(t, ts, "A", 1)
	b := createRoom(t, ts, "B", 1)

	if code, _ := moveIn(t, ts, "Ada", 999); code != 404 {
		t.Fatalf("move into unknown room: expected 404, got %d", code)
	}
	if code := call(t, ts, "POST", "/residents", map[string]any{"name": "x"}, nil); code != 400 {
		t.Fatalf("missing fields: expected 400, got %d", code)
	}

	_, ada := moveIn(t, ts, "Ada", a.ID)
	path := fmt.Sprintf("/residents/%d", ada.ID)

	if code := call(t, ts, "PUT", path, map[string]any{"new_room_id": a.ID}, nil); code != 409 {
		t.Fatalf("same room: expected 409, got %d", code)
	}
	if code := call(t, ts, "PUT", path, map[string]any{"new_room_id": b.ID}, nil); code != 200 {
		t.Fatalf("move: %d", code)
	}
	var got domain.Resident
	call(t, ts, "GET", path, nil, &got)
	if got.RoomID == nil || *got.RoomID != b.ID {
		t.Fatalf("resident should be in room %d: %+v", b.ID, got)
	}

	_, alan := moveIn(t, ts, "Alan", a.ID)
	if code := call(t, ts, "PUT", fmt.Sprintf("/residents/%d", alan.ID), map[string]any{"new_room_id": b.ID}, nil); code != 422 {
		t.Fatalf("full room: expected 422, got %d", code)
	}
	if code := call(t, ts, "PUT", path, map[string]any{"new_room_id": 999}, nil); code != 404 {
		t.Fatalf("unknown room: expected 404, got %d", code)
	}

	if code := call(t, ts, "DELETE", path, nil, nil); code != 200 {
		t.Fatalf("delete: %d", code)
	}
	if code := call(t, ts, "GET", path, nil, nil); code != 404 {
		t.Fatalf("deleted resident: expected 404, got %d", code)
	}
	if code := call(t, ts, "DELETE", path, nil, nil); code != 404 {
		t.Fatalf("second delete: expected 404, got %d", code)
	}
}

func TestContactEndpoints(t *testing.T) {
	ts := newAPI(t, contacts.NewMemory())
	room := createRoom(t, ts, "A", 2)
	_, ada := moveIn(t, ts, "Ada", room.ID)
	_, alan := moveIn(t, ts, "Alan", room.ID)

	if code := call(t, ts, "GET", fmt.Sprintf("/contacts/residents/%d", ada.ID), nil, nil); code != 404 {
		t.Fatalf("no contacts yet: expected 404, got %d", code)
	}
	if code := call(t, ts, "GET", "/contacts/residents/999", nil, nil); code != 404 {
		t.Fatalf("unknown resident: expected 404, got %d", code)
	}
	if code := call(t, ts, "POST", "/contacts/residents/999", map[string]any{"number": "1", "email": "e"}, nil); code != 404 {
		t.Fatalf("unknown resident: expected 404, got %d", code)
	}

	body := map[string]any{"number": "+44 1", "email": "ada@example.com"}
	if code := call(t, ts, "POST", fmt.Sprintf("/contacts/residents/%d", ada.ID), body, nil); code != 201 {
		t.Fatalf("add resident contact: %d", code)
	}

	var rc struct {
		ID       int64            `json:"id"`
		Contacts []domain.Contact `json:"contacts"`
	}
	if code := call(t, ts, "GET", fmt.Sprintf("/contacts/residents/%d", ada.ID), nil, &rc); code != 200 {
		t.Fatalf("get contacts: %d", code)
	}
	if rc.ID != ada.ID || len(rc.Contacts) != 1 || rc.Contacts[0].Name != "Ada" || rc.Contacts[0].Surname != "S" {
		t.Fatalf("unexpected contacts: %+v", rc)
	}

	if code := call(t, ts, "POST", "/contacts", map[string]any{"id": 77, "name": "x"}, nil); code != 400 {
		t.Fatalf("missing fields: expected 400, got %d", code)
	}
	free := map[string]any{"id": 77, "surname": "Hopper", "name": "Grace", "number": "2", "email": "g@h"}
	if code := call(t, ts, "POST", "/contacts", free, nil); code != 201 {
		t.Fatalf("create contact: %d", code)
	}

	var all struct {
		Contacts []domain.Contact `json:"contacts"`
	}
	call(t, ts, "GET", "/contacts", nil, &all)
	if len(all.Contacts) != 2 {
		t.Fatalf("expected 2 contacts: %+v", all.Contacts)
	}

	var rwc struct {
		Residents []domain.ResidentView `json:"residents_with_contacts"`
	}
	call(t, ts, "GET", "/contacts/residents", nil, &rwc)
	if len(rwc.Residents) != 2 {
		t.Fatalf("expected 2 residents: %+v", rwc.Residents)
	}
	for _, v := range rwc.Residents {
		switch v.ID {
		case ada.ID:
			if len(v.Contacts) != 1 || v.Error != "" {
				t.Fatalf("unexpected Ada entry: %+v", v)
			}
		case alan.ID:
			if v.Error != app.MsgNoContactsSpecified {
				t.Fatalf("unexpected Alan entry: %+v", v)
			}
		}
	}

	var dump struct {
		Hotel []domain.RoomView `json:"hotel"`
	}
	if code := call(t, ts, "GET", "/", nil, &dump); code != 200 {
		t.Fatalf("dump: %d", code)
	}
	if len(dump.Hotel) != 1 || len(dump.Hotel[0].Residents) != 2 || dump.Hotel[0].Residents[1].Error != app.MsgContactNotAdded {
		t.Fatalf("unexpected dump: %+v", dump.Hotel)
	}
}

func TestContactUpstreamFailures(t *testing.T) {
	ts := newAPI(t, brokenDir{})
	room := createRoom(t, ts, "A", 1)
	_, ada := moveIn(t, ts, "Ada", room.ID)

	if code := call(t, ts, "GET", "/contacts", nil, nil); code != 500 {
		t.Fatalf("list: expected 500, got %d", code)
	}
	if code := call(t, ts, "GET", fmt.Sprintf("/contacts/residents/%d", ada.ID), nil, nil); code != 500 {
		t.Fatalf("get: expected 500, got %d", code)
	}
	free := map[string]any{"id": 1, "surname": "s", "name": "n", "number": "1", "email": "e"}
	if code := call(t, ts, "POST", "/contacts", free, nil); code != 500 {
		t.Fatalf("create: expected 500, got %d", code)
	}
	// the dump degrades instead of failing
	if code := call(t, ts, "GET", "/", nil, nil); code != 200 {
		t.Fatalf("dump: expected 200, got %d", code)
	}
}

func TestHealthz(t *testing.T) {
	ts := newAPI(t, contacts.NewMemory())
	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != 200 {
		t.Fatalf("healthz: %d", res.StatusCode)
	}
}
