package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/events"
	"github.com/mmynk/groupledger/internal/metrics"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/storage"
	"github.com/mmynk/groupledger/pkg/api"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	store     storage.Store
	publisher events.Publisher
}

var _ api.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService with the given storage backend
// and event publisher.
func NewGroupService(store storage.Store, publisher events.Publisher) *GroupService {
	return &GroupService{store: store, publisher: publisher}
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received", "name", req.Msg.Name)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name required")
	}

	// Save to storage (generates ID and CreatedAt)
	group := &models.Group{Name: name}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	publish(ctx, s.publisher, events.GroupCreated, group.ID, group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID together with its persons.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	persons, err := s.store.ListPersons(ctx, group.ID)
	if err != nil {
		slog.Error("GetGroup failed - could not list persons", "group_id", group.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)

	return connect.NewResponse(&api.GetGroupResponse{
		Group:   toAPIGroup(group),
		Persons: toAPIPersons(persons),
	}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connectError(err)
	}

	apiGroups := make([]*api.Group, len(groups))
	for i, group := range groups {
		apiGroups[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: apiGroups}), nil
}

// DeleteGroup removes a group with everything recorded in it.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "error", err)
		return nil, connectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)
	publish(ctx, s.publisher, events.GroupDeleted, req.Msg.GroupID, req.Msg.GroupID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddPerson adds a person to a group.
func (s *GroupService) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.AddPersonResponse], error) {
	slog.Info("AddPerson request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name)

	if req.Msg.GroupID == "" {
		return nil, invalidArgument("group_id required")
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name required")
	}

	person := &models.Person{GroupID: req.Msg.GroupID, Name: name}
	if err := s.store.AddPerson(ctx, person); err != nil {
		slog.Error("AddPerson failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Person added", "group_id", person.GroupID, "person_id", person.ID)
	publish(ctx, s.publisher, events.PersonAdded, person.GroupID, person.ID)

	return connect.NewResponse(&api.AddPersonResponse{Person: toAPIPerson(person)}), nil
}

// ListPersons retrieves the persons of a group.
func (s *GroupService) ListPersons(ctx context.Context, req *connect.Request[api.ListPersonsRequest]) (*connect.Response[api.ListPersonsResponse], error) {
	slog.Info("ListPersons request received", "group_id", req.Msg.GroupID)

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("ListPersons failed - group not found", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	persons, err := s.store.ListPersons(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListPersons failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("ListPersons successful", "group_id", req.Msg.GroupID, "count", len(persons))

	return connect.NewResponse(&api.ListPersonsResponse{Persons: toAPIPersons(persons)}), nil
}

// DeletePerson removes a person. A person who paid for or shares an expense,
// or took part in a settlement, cannot be deleted.
func (s *GroupService) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	slog.Info("DeletePerson request received", "person_id", req.Msg.PersonID)

	person, err := s.store.GetPerson(ctx, req.Msg.PersonID)
	if err != nil {
		slog.Error("DeletePerson failed", "person_id", req.Msg.PersonID, "error", err)
		return nil, connectError(err)
	}

	if err := s.store.DeletePerson(ctx, person.ID); err != nil {
		slog.Error("DeletePerson failed", "person_id", person.ID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Person deleted", "group_id", person.GroupID, "person_id", person.ID)
	publish(ctx, s.publisher, events.PersonDeleted, person.GroupID, person.ID)

	return connect.NewResponse(&api.DeletePersonResponse{}), nil
}

// GetGroupBalances computes balances across all expenses and settlements of
// a group, along with the transfers that would settle it.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GetGroupBalances request received", "group_id", groupID)

	if groupID == "" {
		return nil, invalidArgument("group_id required")
	}

	snap, err := s.store.LedgerSnapshot(ctx, groupID)
	if err != nil {
		slog.Error("GetGroupBalances failed - could not read ledger", "group_id", groupID, "error", err)
		return nil, connectError(err)
	}

	summary, err := calculator.Summarize(snap.Persons, snap.Expenses, snap.Settlements)
	if err != nil {
		metrics.ObserveBalances(0, err)
		slog.Error("GetGroupBalances failed - could not compute balances", "group_id", groupID, "error", err)
		// Stored records were validated on write, so a failure here is ours.
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	metrics.ObserveBalances(len(summary.Transfers), nil)

	slog.Info("GetGroupBalances successful",
		"group_id", groupID,
		"persons", len(summary.Sheet),
		"expenses", len(snap.Expenses),
		"transfers", len(summary.Transfers),
	)

	return connect.NewResponse(toAPIBalances(summary)), nil
}
