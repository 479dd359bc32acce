package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/example/roster/internal/core/participant"
	"github.com/example/roster/internal/core/precedence"
	"github.com/example/roster/internal/core/roster"
	"github.com/example/roster/internal/ports/primary"
	"github.com/example/roster/internal/ports/secondary"
)

// RosterServiceImpl implements the RosterService interface.
type RosterServiceImpl struct {
	networkRepo     secondary.NetworkRepository
	participantRepo secondary.ParticipantRepository
	logWriter       secondary.LogWriter
	fallback        precedence.Table
	logger          *slog.Logger
	opts            []roster.Option

	// mu serializes read-modify-write sequences against the repositories.
	mu sync.Mutex
}

// NewRosterService creates a new RosterService with injected dependencies.
// fallback is the table used for networks that never advertised PREFIX.
func NewRosterService(
	networkRepo secondary.NetworkRepository,
	participantRepo secondary.ParticipantRepository,
	logWriter secondary.LogWriter,
	fallback precedence.Table,
	logger *slog.Logger,
	opts ...roster.Option,
) *RosterServiceImpl {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RosterServiceImpl{
		networkRepo:     networkRepo,
		participantRepo: participantRepo,
		logWriter:       logWriter,
		fallback:        fallback.Clone(),
		logger:          logger,
		opts:            opts,
	}
}

// SetNetworkPrefix records the PREFIX a network advertised.
func (s *RosterServiceImpl) SetNetworkPrefix(ctx context.Context, req primary.SetNetworkPrefixRequest) (*primary.Network, error) {
	table, err := precedence.ParsePrefix(req.Prefix)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.networkRepo.Upsert(ctx, &secondary.NetworkRecord{Name: req.Network, Prefix: table.String()}); err != nil {
		return nil, fmt.Errorf("failed to save network: %w", err)
	}

	// Symbols are derived on read, so rebuilding only revalidates stored rows.
	records, err := s.participantRepo.ListByNetwork(ctx, req.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	privileged := 0
	for _, r := range records {
		rec, err := participant.Build(participant.Attributes{Nick: r.Nick, Modes: r.Modes}, table)
		if err != nil {
			return nil, fmt.Errorf("stored participant %q is invalid: %w", r.Nick, err)
		}
		if rec.Mode != "" {
			privileged++
		}
	}
	s.logger.Debug("revalidated participants against new prefix",
		"network", req.Network, "prefix", table.String(), "participants", len(records), "privileged", privileged)

	if err := s.logEvent(ctx, &secondary.RosterEventRecord{
		Network: req.Network,
		Action:  secondary.ActionPrefix,
		Detail:  table.String(),
	}); err != nil {
		return nil, err
	}

	saved, err := s.networkRepo.GetByName(ctx, req.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved network: %w", err)
	}
	return s.recordToNetwork(saved, table), nil
}

// GetNetwork retrieves a network by name.
func (s *RosterServiceImpl) GetNetwork(ctx context.Context, name string) (*primary.Network, error) {
	record, err := s.networkRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("network %s: %w", name, primary.ErrNotFound)
	}
	table, err := precedence.ParsePrefix(record.Prefix)
	if err != nil {
		return nil, fmt.Errorf("stored prefix for %s is invalid: %w", name, err)
	}
	return s.recordToNetwork(record, table), nil
}

// ListNetworks retrieves all known networks.
func (s *RosterServiceImpl) ListNetworks(ctx context.Context) ([]*primary.Network, error) {
	records, err := s.networkRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}

	networks := make([]*primary.Network, 0, len(records))
	for _, r := range records {
		table, err := precedence.ParsePrefix(r.Prefix)
		if err != nil {
			return nil, fmt.Errorf("stored prefix for %s is invalid: %w", r.Name, err)
		}
		networks = append(networks, s.recordToNetwork(r, table))
	}
	return networks, nil
}

// Join adds a participant to a channel. The nick may carry NAMES prefixes
// such as "@+alice"; their codes come before any explicit modes.
func (s *RosterServiceImpl) Join(ctx context.Context, req primary.JoinRequest) (*primary.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.loadTable(ctx, req.Network)
	if err != nil {
		return nil, err
	}

	nick, codes := table.SplitPrefixed(strings.TrimSpace(req.Nick))
	for _, code := range req.Modes {
		if err := validateCode(code); err != nil {
			return nil, err
		}
		if !containsString(codes, code) {
			codes = append(codes, code)
		}
	}

	r := roster.New(req.Channel, table, s.opts...)
	rec, err := r.Add(participant.Attributes{Nick: nick, Modes: codes})
	if err != nil {
		return nil, err
	}

	if err := s.participantRepo.Upsert(ctx, &secondary.ParticipantRecord{
		Network: req.Network,
		Channel: req.Channel,
		Nick:    rec.Nick,
		Modes:   rec.Modes,
	}); err != nil {
		return nil, fmt.Errorf("failed to save participant: %w", err)
	}

	if err := s.logEvent(ctx, &secondary.RosterEventRecord{
		Network: req.Network,
		Channel: req.Channel,
		Nick:    rec.Nick,
		Action:  secondary.ActionJoin,
		Detail:  strings.Join(rec.Modes, ""),
	}); err != nil {
		return nil, err
	}

	return s.recordToParticipant(rec, r), nil
}

// Part removes a participant from a channel.
func (s *RosterServiceImpl) Part(ctx context.Context, req primary.PartRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.participantRepo.Get(ctx, req.Network, req.Channel, req.Nick)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%s in %s: %w", req.Nick, req.Channel, primary.ErrNotFound)
	}

	if err := s.participantRepo.Delete(ctx, req.Network, req.Channel, req.Nick); err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	return s.logEvent(ctx, &secondary.RosterEventRecord{
		Network: req.Network,
		Channel: req.Channel,
		Nick:    req.Nick,
		Action:  secondary.ActionPart,
	})
}

// Rename changes a nick on every channel of a network. Each occupied
// channel is checked for a collision before anything is written.
func (s *RosterServiceImpl) Rename(ctx context.Context, req primary.RenameRequest) (*primary.RenameResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.loadTable(ctx, req.Network)
	if err != nil {
		return nil, err
	}
	records, err := s.participantRepo.ListByNetwork(ctx, req.Network)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	channels, err := s.buildRosters(records, table)
	if err != nil {
		return nil, err
	}

	var newNick string
	touched := 0
	for _, r := range channels {
		if _, ok := r.Find(req.OldNick); !ok {
			continue
		}
		rec, err := r.Rename(req.OldNick, req.NewNick)
		if err != nil {
			return nil, fmt.Errorf("cannot rename in %s: %w", r.Channel(), err)
		}
		newNick = rec.Nick
		touched++
	}
	if touched == 0 {
		return nil, fmt.Errorf("%s on %s: %w", req.OldNick, req.Network, primary.ErrNotFound)
	}

	if newNick != req.OldNick {
		if _, err := s.participantRepo.Rename(ctx, req.Network, req.OldNick, newNick); err != nil {
			return nil, err
		}
	}

	if err := s.logEvent(ctx, &secondary.RosterEventRecord{
		Network: req.Network,
		Nick:    newNick,
		Action:  secondary.ActionNick,
		Detail:  req.OldNick,
	}); err != nil {
		return nil, err
	}

	return &primary.RenameResponse{Channels: touched}, nil
}

// ChangeMode grants or revokes one privilege code.
func (s *RosterServiceImpl) ChangeMode(ctx context.Context, req primary.ChangeModeRequest) (*primary.Participant, error) {
	if err := validateCode(req.Code); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.loadTable(ctx, req.Network)
	if err != nil {
		return nil, err
	}
	if table.CodeRank(req.Code) == precedence.Unranked {
		s.logger.Warn("mode change names a code the network does not rank",
			"network", req.Network, "channel", req.Channel, "nick", req.Nick, "code", req.Code)
	}

	existing, err := s.participantRepo.Get(ctx, req.Network, req.Channel, req.Nick)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%s in %s: %w", req.Nick, req.Channel, primary.ErrNotFound)
	}

	r := roster.New(req.Channel, table, s.opts...)
	if _, err := r.Add(participant.Attributes{Nick: existing.Nick, Modes: existing.Modes}); err != nil {
		return nil, err
	}

	sign := "-"
	var rec participant.Record
	if req.Grant {
		sign = "+"
		rec, err = r.AddMode(req.Nick, req.Code)
	} else {
		rec, err = r.RemoveMode(req.Nick, req.Code)
	}
	if err != nil {
		return nil, err
	}

	if err := s.participantRepo.UpdateModes(ctx, []*secondary.ParticipantRecord{{
		Network: req.Network,
		Channel: req.Channel,
		Nick:    rec.Nick,
		Modes:   rec.Modes,
	}}); err != nil {
		return nil, err
	}

	if err := s.logEvent(ctx, &secondary.RosterEventRecord{
		Network: req.Network,
		Channel: req.Channel,
		Nick:    rec.Nick,
		Action:  secondary.ActionMode,
		Detail:  sign + req.Code,
	}); err != nil {
		return nil, err
	}

	return s.recordToParticipant(rec, r), nil
}

// Names returns a channel's participants in display order.
func (s *RosterServiceImpl) Names(ctx context.Context, network, channel string) (*primary.ChannelNames, error) {
	table, err := s.loadTable(ctx, network)
	if err != nil {
		return nil, err
	}
	records, err := s.participantRepo.ListByChannel(ctx, network, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("channel %s on %s: %w", channel, network, primary.ErrNotFound)
	}

	channels, err := s.buildRosters(records, table)
	if err != nil {
		return nil, err
	}
	r := channels[0]

	sorted := r.Sorted()
	names := &primary.ChannelNames{
		Network:      network,
		Channel:      channel,
		Prefix:       table.String(),
		Participants: make([]*primary.Participant, len(sorted)),
	}
	for i, rec := range sorted {
		names.Participants[i] = s.recordToParticipant(rec, r)
	}
	return names, nil
}

// History returns recent roster changes on a network, newest first.
func (s *RosterServiceImpl) History(ctx context.Context, network string, limit int) ([]*primary.RosterEvent, error) {
	records, err := s.logWriter.ListEvents(ctx, network, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	events := make([]*primary.RosterEvent, len(records))
	for i, r := range records {
		events[i] = &primary.RosterEvent{
			Network:   r.Network,
			Channel:   r.Channel,
			Nick:      r.Nick,
			Action:    r.Action,
			Detail:    r.Detail,
			CreatedAt: r.CreatedAt,
		}
	}
	return events, nil
}

// Helper methods

// loadTable returns the network's advertised table, or the fallback table
// when the network is unknown.
func (s *RosterServiceImpl) loadTable(ctx context.Context, network string) (precedence.Table, error) {
	record, err := s.networkRepo.GetByName(ctx, network)
	if err != nil {
		return nil, fmt.Errorf("failed to load network: %w", err)
	}
	if record == nil {
		s.logger.Debug("network has no recorded prefix, using fallback",
			"network", network, "prefix", s.fallback.String())
		return s.fallback.Clone(), nil
	}
	table, err := precedence.ParsePrefix(record.Prefix)
	if err != nil {
		return nil, fmt.Errorf("stored prefix for %s is invalid: %w", network, err)
	}
	return table, nil
}

// buildRosters groups records by channel, keeping each channel's insertion
// order and the order channels were first seen.
func (s *RosterServiceImpl) buildRosters(records []*secondary.ParticipantRecord, table precedence.Table) ([]*roster.Roster, error) {
	var out []*roster.Roster
	byChannel := make(map[string]*roster.Roster)
	for _, rec := range records {
		r, ok := byChannel[rec.Channel]
		if !ok {
			r = roster.New(rec.Channel, table, s.opts...)
			byChannel[rec.Channel] = r
			out = append(out, r)
		}
		if _, err := r.Add(participant.Attributes{Nick: rec.Nick, Modes: rec.Modes}); err != nil {
			return nil, fmt.Errorf("stored participant %q is invalid: %w", rec.Nick, err)
		}
	}
	return out, nil
}

func (s *RosterServiceImpl) logEvent(ctx context.Context, event *secondary.RosterEventRecord) error {
	if s.logWriter == nil {
		return nil
	}
	if err := s.logWriter.LogEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to record %s event: %w", event.Action, err)
	}
	return nil
}

func (s *RosterServiceImpl) recordToParticipant(rec participant.Record, r *roster.Roster) *primary.Participant {
	rank := r.Rank(rec)
	if rank == precedence.Unranked {
		rank = -1
	}
	symbol := r.Symbol(rec)
	return &primary.Participant{
		Nick:     rec.Nick,
		Modes:    rec.Modes,
		Symbols:  rec.Symbols,
		Symbol:   symbol,
		Prefixed: symbol + rec.Nick,
		Rank:     rank,
	}
}

func (s *RosterServiceImpl) recordToNetwork(r *secondary.NetworkRecord, table precedence.Table) *primary.Network {
	tiers := make([]primary.Tier, len(table))
	for i, e := range table {
		tiers[i] = primary.Tier{Code: e.Code, Symbol: e.Symbol}
	}
	return &primary.Network{
		Name:      r.Name,
		Prefix:    r.Prefix,
		Tiers:     tiers,
		UpdatedAt: r.UpdatedAt,
	}
}

// validateCode rejects codes that cannot name a single channel mode.
func validateCode(code string) error {
	if code == "" || strings.ContainsAny(code, ", \t\r\n") {
		return fmt.Errorf("%w: %q", primary.ErrInvalidMode, code)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Ensure RosterServiceImpl implements the interface.
var _ primary.RosterService = (*RosterServiceImpl)(nil)
