package trade

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guild-hub/guild-hub/internal/domain/trade"
)

// Config carries the tunable windows of the trade engine.
type Config struct {
	InvitationTTL  time.Duration
	NegotiationTTL time.Duration
}

// Store owns all live invitations and sessions. The store mutex guards only
// the maps and the pair index; every mutation of a session runs under that
// session's own mutex, so distinct sessions proceed fully in parallel while
// events on one session are totally ordered.
type Store struct {
	mu          sync.Mutex
	invitations map[uuid.UUID]*trade.Invitation
	sessions    map[uuid.UUID]*sessionEntry
	pairIndex   map[string]pairRef

	gen uint64

	query       trade.InventoryQuery
	coordinator *CommitCoordinator
	scheduler   *Scheduler
	archive     trade.Repository
	notifier    trade.NotificationPort
	clock       trade.Clock
	cfg         Config
	logger      zerolog.Logger
}

// pairRef marks which live object currently holds a participant pair. Exactly
// one of the two ids is set.
type pairRef struct {
	invitationID uuid.UUID
	sessionID    uuid.UUID
}

type sessionEntry struct {
	mu      sync.Mutex
	sess    *trade.Session
	offers  *OfferRegistry
	removed bool
}

// NewStore wires the trade engine. The archive and notifier are best effort;
// the query, coordinator and scheduler are on the consistency path.
func NewStore(
	query trade.InventoryQuery,
	coordinator *CommitCoordinator,
	scheduler *Scheduler,
	archive trade.Repository,
	notifier trade.NotificationPort,
	clock trade.Clock,
	cfg Config,
	logger zerolog.Logger,
) *Store {
	if cfg.InvitationTTL <= 0 {
		cfg.InvitationTTL = 15 * time.Second
	}
	if cfg.NegotiationTTL <= 0 {
		cfg.NegotiationTTL = 120 * time.Second
	}
	return &Store{
		invitations: make(map[uuid.UUID]*trade.Invitation),
		sessions:    make(map[uuid.UUID]*sessionEntry),
		pairIndex:   make(map[string]pairRef),
		query:       query,
		coordinator: coordinator,
		scheduler:   scheduler,
		archive:     archive,
		notifier:    notifier,
		clock:       clock,
		cfg:         cfg,
		logger:      logger.With().Str("service", "trade-store").Logger(),
	}
}

func (s *Store) nextGen() uint64 {
	return atomic.AddUint64(&s.gen, 1)
}

// CreateInvitation opens the invitation window for a pair. The duplicate check
// and the index insert are one atomic step under the store mutex.
func (s *Store) CreateInvitation(initiatorID, receiverID string) (*trade.Invitation, error) {
	if initiatorID == "" || receiverID == "" {
		return nil, newStoreValidation("both participant ids are required")
	}
	if initiatorID == receiverID {
		return nil, newStoreValidation("cannot open a trade with yourself")
	}

	key := trade.PairKey(initiatorID, receiverID)
	now := s.clock.Now()
	inv := &trade.Invitation{
		InvitationID: uuid.New(),
		InitiatorID:  initiatorID,
		ReceiverID:   receiverID,
		CreatedAt:    now,
		DeadlineAt:   now.Add(s.cfg.InvitationTTL),
		Generation:   s.nextGen(),
	}

	s.mu.Lock()
	if ref, ok := s.pairIndex[key]; ok {
		s.mu.Unlock()
		existing := ref.sessionID
		if existing == uuid.Nil {
			existing = ref.invitationID
		}
		return nil, &trade.DuplicateSessionError{PairKey: key, ExistingID: existing}
	}
	s.invitations[inv.InvitationID] = inv
	s.pairIndex[key] = pairRef{invitationID: inv.InvitationID}
	s.mu.Unlock()

	s.scheduler.Arm(inv.DeadlineAt, inv.Generation, func(gen uint64) {
		s.expireInvitation(inv.InvitationID, gen)
	})

	s.logger.Info().
		Str("invitation_id", inv.InvitationID.String()).
		Str("initiator_id", initiatorID).
		Str("receiver_id", receiverID).
		Msg("invitation created")

	cp := *inv
	return &cp, nil
}

// AcceptInvitation promotes an invitation into a negotiating session and
// installs the negotiation deadline. Only the invited party may accept.
func (s *Store) AcceptInvitation(invitationID uuid.UUID, actorID string) (*trade.Snapshot, error) {
	now := s.clock.Now()

	s.mu.Lock()
	inv, ok := s.invitations[invitationID]
	if !ok {
		s.mu.Unlock()
		return nil, trade.ErrNotFound
	}
	if actorID != inv.ReceiverID {
		s.mu.Unlock()
		return nil, newStoreValidation("only the invited member can accept")
	}
	key := trade.PairKey(inv.InitiatorID, inv.ReceiverID)
	if now.After(inv.DeadlineAt) {
		delete(s.invitations, invitationID)
		delete(s.pairIndex, key)
		s.mu.Unlock()
		return nil, trade.ErrExpired
	}

	sess := &trade.Session{
		SessionID:   uuid.New(),
		InitiatorID: inv.InitiatorID,
		ReceiverID:  inv.ReceiverID,
		State:       trade.StateNegotiating,
		Version:     1,
		Generation:  s.nextGen(),
		CreatedAt:   now,
		DeadlineAt:  now.Add(s.cfg.NegotiationTTL),
	}
	entry := &sessionEntry{
		sess:   sess,
		offers: NewOfferRegistry(inv.InitiatorID, inv.ReceiverID, s.query),
	}
	delete(s.invitations, invitationID)
	s.sessions[sess.SessionID] = entry
	s.pairIndex[key] = pairRef{sessionID: sess.SessionID}
	s.mu.Unlock()

	s.scheduler.Arm(sess.DeadlineAt, sess.Generation, func(gen uint64) {
		s.expireSession(sess.SessionID, gen)
	})

	entry.mu.Lock()
	snap := s.snapshotLocked(entry, "")
	entry.mu.Unlock()

	s.logger.Info().
		Str("session_id", sess.SessionID.String()).
		Str("invitation_id", invitationID.String()).
		Msg("invitation accepted, session negotiating")

	s.notifier.Render(snap.SessionID, snap)
	return snap, nil
}

// DeclineInvitation closes the invitation window. The invited party declines;
// the initiator may use it to retract an invitation that was not answered yet.
func (s *Store) DeclineInvitation(invitationID uuid.UUID, actorID string) error {
	s.mu.Lock()
	inv, ok := s.invitations[invitationID]
	if !ok {
		s.mu.Unlock()
		return trade.ErrNotFound
	}
	if actorID != inv.ReceiverID && actorID != inv.InitiatorID {
		s.mu.Unlock()
		return newStoreValidation("%s is not a participant of this invitation", actorID)
	}
	delete(s.invitations, invitationID)
	delete(s.pairIndex, trade.PairKey(inv.InitiatorID, inv.ReceiverID))
	s.mu.Unlock()

	s.logger.Info().
		Str("invitation_id", invitationID.String()).
		Str("actor_id", actorID).
		Msg("invitation declined")
	return nil
}

// ProposeItems replaces the actor's offer. Rejected without side effects while
// the actor's offer is locked or the session is past negotiation.
func (s *Store) ProposeItems(ctx context.Context, sessionID uuid.UUID, actorID string, items []trade.ItemStack, expectedVersion *uint64) (*trade.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	if entry.removed {
		entry.mu.Unlock()
		return nil, trade.ErrNotFound
	}
	if _, err := trade.Transition(entry.sess, trade.Event{
		Kind:            trade.EventPropose,
		Actor:           actorID,
		ExpectedVersion: expectedVersion,
	}); err != nil {
		entry.mu.Unlock()
		return nil, err
	}
	if err := entry.offers.Set(ctx, actorID, items); err != nil {
		entry.mu.Unlock()
		return nil, err
	}
	entry.sess.Version++
	snap := s.snapshotLocked(entry, "")
	entry.mu.Unlock()

	s.notifier.Render(snap.SessionID, snap)
	return snap, nil
}

// Lock freezes the actor's current offer. When the second lock arrives the
// session enters BOTH_LOCKED and the settlement window is re-armed once with a
// fresh generation.
func (s *Store) Lock(sessionID uuid.UUID, actorID string, expectedVersion *uint64) (*trade.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	if entry.removed {
		entry.mu.Unlock()
		return nil, trade.ErrNotFound
	}
	res, err := trade.Transition(entry.sess, trade.Event{
		Kind:            trade.EventLock,
		Actor:           actorID,
		ExpectedVersion: expectedVersion,
	})
	if err != nil {
		entry.mu.Unlock()
		return nil, err
	}
	sess := entry.sess
	sess.SideState(res.Side).Locked = true
	sess.Version++
	if res.Next == trade.StateBothLocked {
		sess.State = trade.StateBothLocked
		sess.Generation = s.nextGen()
		sess.DeadlineAt = s.clock.Now().Add(s.cfg.NegotiationTTL)
		s.scheduler.Arm(sess.DeadlineAt, sess.Generation, func(gen uint64) {
			s.expireSession(sess.SessionID, gen)
		})
	}
	snap := s.snapshotLocked(entry, "")
	entry.mu.Unlock()

	s.notifier.Render(snap.SessionID, snap)
	return snap, nil
}

// AcceptFinal records the actor's final confirmation. The second confirmation
// triggers settlement inside the same critical section, so no caller can ever
// observe both accepts without the commit outcome. On commit failure the
// session is cancelled and nothing has been transferred.
func (s *Store) AcceptFinal(ctx context.Context, sessionID uuid.UUID, actorID string, expectedVersion *uint64) (*trade.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	if entry.removed {
		entry.mu.Unlock()
		return nil, trade.ErrNotFound
	}
	res, err := trade.Transition(entry.sess, trade.Event{
		Kind:            trade.EventAcceptFinal,
		Actor:           actorID,
		ExpectedVersion: expectedVersion,
	})
	if err != nil {
		entry.mu.Unlock()
		return nil, err
	}
	sess := entry.sess
	sess.SideState(res.Side).Accepted = true
	sess.Version++

	if !res.ReadyToCommit {
		snap := s.snapshotLocked(entry, "")
		entry.mu.Unlock()
		s.notifier.Render(snap.SessionID, snap)
		return snap, nil
	}

	initOffer := entry.offers.Get(trade.SideInitiator)
	recvOffer := entry.offers.Get(trade.SideReceiver)
	commitErr := s.coordinator.Commit(ctx, sess, initOffer, recvOffer)

	var snap *trade.Snapshot
	var rec *trade.Record
	if commitErr != nil {
		snap, rec = s.finalizeLocked(entry, trade.StateCancelled, commitErr.Error())
	} else {
		snap, rec = s.finalizeLocked(entry, trade.StateCommitted, "")
	}
	entry.mu.Unlock()

	s.archiveRecord(rec)
	s.notifier.Render(snap.SessionID, snap)
	if commitErr != nil {
		s.logger.Warn().
			Str("session_id", sessionID.String()).
			Err(commitErr).
			Msg("settlement failed, session cancelled")
		return nil, commitErr
	}
	s.logger.Info().
		Str("session_id", sessionID.String()).
		Msg("trade committed")
	return snap, nil
}

// Cancel closes the session from any non-terminal state at a participant's
// request.
func (s *Store) Cancel(sessionID uuid.UUID, actorID string) (*trade.Snapshot, error) {
	return s.close(sessionID, actorID, trade.EventCancel, trade.StateCancelled, "cancelled by participant")
}

// Decline closes the session as rejected by a participant.
func (s *Store) Decline(sessionID uuid.UUID, actorID string) (*trade.Snapshot, error) {
	return s.close(sessionID, actorID, trade.EventDecline, trade.StateDeclined, "declined by participant")
}

func (s *Store) close(sessionID uuid.UUID, actorID string, kind trade.EventKind, terminal trade.State, reason string) (*trade.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	if entry.removed {
		entry.mu.Unlock()
		return nil, trade.ErrNotFound
	}
	if _, err := trade.Transition(entry.sess, trade.Event{Kind: kind, Actor: actorID}); err != nil {
		entry.mu.Unlock()
		return nil, err
	}
	snap, rec := s.finalizeLocked(entry, terminal, reason)
	entry.mu.Unlock()

	s.archiveRecord(rec)
	s.notifier.Render(snap.SessionID, snap)
	return snap, nil
}

// Snapshot returns a read-only copy of a live session.
func (s *Store) Snapshot(sessionID uuid.UUID) (*trade.Snapshot, error) {
	entry, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.removed {
		return nil, trade.ErrNotFound
	}
	return s.snapshotLocked(entry, ""), nil
}

// History lists a member's archived trades.
func (s *Store) History(ctx context.Context, userID string, limit, offset int) ([]*trade.Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.archive.ListByUser(ctx, userID, limit, offset)
}

// expireInvitation is the invitation timer callback. A stale generation means
// the invitation was answered before the timer fired.
func (s *Store) expireInvitation(invitationID uuid.UUID, gen uint64) {
	s.mu.Lock()
	inv, ok := s.invitations[invitationID]
	if !ok || inv.Generation != gen {
		s.mu.Unlock()
		return
	}
	delete(s.invitations, invitationID)
	delete(s.pairIndex, trade.PairKey(inv.InitiatorID, inv.ReceiverID))
	s.mu.Unlock()

	s.logger.Info().
		Str("invitation_id", invitationID.String()).
		Msg("invitation expired")
}

// expireSession is the session timer callback. The generation check under the
// session mutex makes a firing that races a legitimate transition a no-op.
func (s *Store) expireSession(sessionID uuid.UUID, gen uint64) {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return
	}

	entry.mu.Lock()
	if entry.removed || entry.sess.Generation != gen {
		entry.mu.Unlock()
		return
	}
	if _, err := trade.Transition(entry.sess, trade.Event{Kind: trade.EventExpire}); err != nil {
		entry.mu.Unlock()
		return
	}
	snap, rec := s.finalizeLocked(entry, trade.StateExpired, "deadline elapsed")
	entry.mu.Unlock()

	s.archiveRecord(rec)
	s.notifier.Render(snap.SessionID, snap)
	s.logger.Info().
		Str("session_id", sessionID.String()).
		Msg("session expired")
}

func (s *Store) lookup(sessionID uuid.UUID) (*sessionEntry, error) {
	s.mu.Lock()
	entry, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, trade.ErrNotFound
	}
	return entry, nil
}

// finalizeLocked moves the session into a terminal state and removes it from
// the live maps. Called with the entry mutex held; safe to take the store
// mutex here because no path acquires an entry mutex while holding it.
func (s *Store) finalizeLocked(entry *sessionEntry, terminal trade.State, reason string) (*trade.Snapshot, *trade.Record) {
	sess := entry.sess
	sess.State = terminal
	sess.Version++
	sess.Generation = s.nextGen()
	entry.removed = true

	s.mu.Lock()
	delete(s.sessions, sess.SessionID)
	delete(s.pairIndex, trade.PairKey(sess.InitiatorID, sess.ReceiverID))
	s.mu.Unlock()

	snap := s.snapshotLocked(entry, reason)
	rec := &trade.Record{
		SessionID:      sess.SessionID,
		InitiatorID:    sess.InitiatorID,
		ReceiverID:     sess.ReceiverID,
		State:          terminal,
		Reason:         reason,
		InitiatorOffer: entry.offers.Get(trade.SideInitiator),
		ReceiverOffer:  entry.offers.Get(trade.SideReceiver),
		CreatedAt:      sess.CreatedAt,
		ClosedAt:       s.clock.Now(),
	}
	return snap, rec
}

func (s *Store) snapshotLocked(entry *sessionEntry, reason string) *trade.Snapshot {
	sess := entry.sess
	return &trade.Snapshot{
		SessionID:         sess.SessionID,
		InitiatorID:       sess.InitiatorID,
		ReceiverID:        sess.ReceiverID,
		State:             sess.State,
		Version:           sess.Version,
		InitiatorOffer:    entry.offers.Get(trade.SideInitiator),
		ReceiverOffer:     entry.offers.Get(trade.SideReceiver),
		InitiatorLocked:   sess.Initiator.Locked,
		ReceiverLocked:    sess.Receiver.Locked,
		InitiatorAccepted: sess.Initiator.Accepted,
		ReceiverAccepted:  sess.Receiver.Accepted,
		CreatedAt:         sess.CreatedAt,
		DeadlineAt:        sess.DeadlineAt,
		Reason:            reason,
	}
}

// archiveRecord persists a terminal session, best effort. Archive failures are
// logged and never surface to the participants.
func (s *Store) archiveRecord(rec *trade.Record) {
	if rec == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.archive.Insert(ctx, rec); err != nil {
		s.logger.Error().
			Str("session_id", rec.SessionID.String()).
			Err(err).
			Msg("failed to archive trade")
	}
}

func newStoreValidation(format string, args ...interface{}) error {
	return &trade.ValidationError{Reason: fmt.Sprintf(format, args...)}
}
