// Package service is the reconciler: it composes the netlink transport,
// the persistent store, the IP allocator, authorization and the
// pair-token codec into the domain operations (config lifecycle,
// settings, admin management, startup reconciliation) behind one
// mutex-guarded resource bundle.
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/netip"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/curve25519"
	"k8s.io/klog/v2"

	"github.com/nexuspointwg/corectl/internal/pkg/authz"
	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/pkg/ipalloc"
	"github.com/nexuspointwg/corectl/internal/pkg/model"
	"github.com/nexuspointwg/corectl/internal/pkg/netlink"
	"github.com/nexuspointwg/corectl/internal/pkg/pairtoken"
	"github.com/nexuspointwg/corectl/internal/pkg/routenl"
	"github.com/nexuspointwg/corectl/internal/pkg/wgconfig"
	"github.com/nexuspointwg/corectl/internal/pkg/wgnl"
	"github.com/nexuspointwg/corectl/internal/store"
	"github.com/nexuspointwg/corectl/pkg/options"
	"github.com/HappyLadySauce/errors"
)

// Service holds the store handle, the mutex-guarded {netlink, allocator}
// bundle, the managed interface's identity, and the reconciler's
// configuration.
type Service struct {
	store store.Factory
	codec *pairtoken.Codec

	mu   sync.Mutex
	wg   *wgnl.Client
	rt   *routenl.Client
	ips  *ipalloc.Cursor

	ifaceIndex int
	ifaceName  string
	serverPub  []byte
	dvpnTable  uint32
	endpoint   string
}

// New resolves the managed interface and positions the IP allocator at
// the end of the already-assigned prefix region, so subsequent
// allocations continue past every config recorded so far.
func New(ctx context.Context, st store.Factory, wg *wgnl.Client, rt *routenl.Client, opts *options.WireGuardOptions) (*Service, error) {
	iface, err := wg.GetInterface(opts.Interface)
	if err != nil {
		return nil, err
	}
	if iface.PublicKey == nil {
		return nil, errors.WithCode(code.ErrServiceInvalidKey, "interface %s has no public key", opts.Interface)
	}

	cursor, err := ipalloc.New(opts.Prefix())
	if err != nil {
		return nil, err
	}

	codec, err := pairtoken.New([]byte(opts.PairSecret))
	if err != nil {
		return nil, err
	}

	count, err := st.Configs().CountAll(ctx)
	if err != nil {
		return nil, err
	}
	cursor.Advance(int(count))

	return &Service{
		store:      st,
		codec:      codec,
		wg:         wg,
		rt:         rt,
		ips:        cursor,
		ifaceIndex: iface.Index,
		ifaceName:  opts.Interface,
		serverPub:  iface.PublicKey[:],
		dvpnTable:  opts.DVPNTable,
		endpoint:   opts.Endpoint,
	}, nil
}

// NewConfig creates a new peer entry for userID. If publicKeyB64 is nil an
// X25519 keypair is generated; otherwise the supplied key is used and
// priv_key stays nil (the server never learns the client's private half).
func (s *Service) NewConfig(ctx context.Context, userID uuid.UUID, name string, publicKeyB64 *string) (uuid.UUID, error) {
	var pub, priv []byte
	if publicKeyB64 != nil {
		decoded, err := base64.StdEncoding.DecodeString(*publicKeyB64)
		if err != nil || len(decoded) != model.KeyLen {
			return uuid.Nil, errors.WithCode(code.ErrServiceInvalidKey, "public key must be 32 base64-decoded bytes")
		}
		pub = decoded
	} else {
		p, pr, err := generateKeypair()
		if err != nil {
			return uuid.Nil, err
		}
		pub, priv = p, pr
	}

	if err := s.store.Keys().EnsureKey(ctx, &model.Key{PublicKey: pub, PrivateKey: priv, Name: name, UserID: userID}); err != nil {
		return uuid.Nil, err
	}

	s.mu.Lock()
	addr, allocErr := s.ips.Allocate()
	s.mu.Unlock()
	if allocErr != nil {
		return uuid.Nil, allocErr
	}

	cfg := &model.Config{ID: uuid.New(), UserID: userID, PublicKey: pub, Name: name}
	if err := s.store.Configs().AddConfig(ctx, cfg, addrToUint32(addr)); err != nil {
		return uuid.Nil, err
	}

	prefix := netip.PrefixFrom(addr, 32)
	var pubArr [32]byte
	copy(pubArr[:], pub)

	s.mu.Lock()
	peerErr := s.wg.AddPeer(s.ifaceIndex, pubArr, []netip.Prefix{prefix})
	s.mu.Unlock()
	if peerErr != nil {
		return uuid.Nil, peerErr
	}

	s.mu.Lock()
	routeErr := s.rt.AddHostRoute(addr, s.ifaceIndex)
	s.mu.Unlock()
	if routeErr != nil && !netlink.IsAlreadyExists(routeErr) {
		klog.V(1).InfoS("best-effort route install failed, init will repair it", "config", cfg.ID, "addr", addr, "error", routeErr)
	}

	return cfg.ID, nil
}

// RmConfig soft-deletes a config the caller owns (or, for an admin, any
// config) and removes its peer from the kernel.
func (s *Service) RmConfig(ctx context.Context, callerID uuid.UUID, isAdmin bool, configID uuid.UUID) error {
	cfg, err := s.store.Configs().GetFull(ctx, configID)
	if err != nil {
		return err
	}
	if err := authz.CheckConfig(isAdmin, cfg.UserID == callerID, authz.ActionConfigDelete); err != nil {
		return err
	}

	if err := s.store.Configs().SoftDelete(ctx, configID); err != nil {
		return err
	}

	var pubArr [32]byte
	copy(pubArr[:], cfg.PublicKey)

	s.mu.Lock()
	err = s.wg.RemovePeer(s.ifaceIndex, pubArr)
	s.mu.Unlock()
	return err
}

// GetConfig returns one config enriched with its address and traffic
// totals, after checking the caller may read it.
func (s *Service) GetConfig(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) (*model.FullConfig, error) {
	cfg, err := s.store.Configs().GetFull(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckConfig(isAdmin, cfg.UserID == callerID, authz.ActionConfigRead); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ListConfigs returns every non-deleted config owned by userID.
func (s *Service) ListConfigs(ctx context.Context, userID uuid.UUID) ([]*model.FullConfig, error) {
	return s.store.Configs().ListFullByUser(ctx, userID)
}

// RenameConfig renames a config after checking the caller may modify it.
func (s *Service) RenameConfig(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID, name string) error {
	cfg, err := s.store.Configs().GetFull(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CheckConfig(isAdmin, cfg.UserID == callerID, authz.ActionConfigRename); err != nil {
		return err
	}
	return s.store.Configs().Rename(ctx, id, name)
}

// ChangeSettings toggles a config's double-VPN policy route, identified
// by config id rather than a bare IP since every other operation in this
// API is id-addressed; the IP is resolved from the config's stored
// assignment.
func (s *Service) ChangeSettings(ctx context.Context, callerID uuid.UUID, isAdmin bool, configID uuid.UUID, doubleVPN bool) error {
	cfg, err := s.store.Configs().GetFull(ctx, configID)
	if err != nil {
		return err
	}
	if err := authz.CheckConfig(isAdmin, cfg.UserID == callerID, authz.ActionConfigRename); err != nil {
		return err
	}

	if err := s.store.PeerSettings().Set(ctx, configID, doubleVPN); err != nil {
		return err
	}

	addr := uint32ToAddr(cfg.Addr)
	s.mu.Lock()
	ruleErr := s.rt.ChangeRule(addr, s.dvpnTable, doubleVPN)
	s.mu.Unlock()

	if ruleErr == nil {
		return nil
	}
	if doubleVPN && netlink.IsAlreadyExists(ruleErr) {
		return nil
	}
	if !doubleVPN && netlink.IsNotFound(ruleErr) {
		return nil
	}
	return ruleErr
}

// RenderConfig builds the client-facing WireGuard config text for a
// config id, including the client's private key when the server holds
// it.
func (s *Service) RenderConfig(ctx context.Context, callerID uuid.UUID, isAdmin bool, configID uuid.UUID) (string, error) {
	cfg, err := s.GetConfig(ctx, callerID, isAdmin, configID)
	if err != nil {
		return "", err
	}
	key, err := s.store.Keys().Get(ctx, cfg.PublicKey)
	if err != nil {
		return "", err
	}
	return wgconfig.Render(wgconfig.Params{
		Address:         uint32ToAddr(cfg.Addr),
		PrivateKey:      key.PrivateKey,
		ServerPublicKey: s.serverPub,
		Endpoint:        s.endpoint,
	}), nil
}

// Init performs startup reconciliation: best-effort route/rule
// restoration per config, then a single atomic replace_peers call that
// forces the kernel peer set to match the store exactly regardless of
// whatever peer set existed on the interface beforehand.
func (s *Service) Init(ctx context.Context) error {
	configs, err := s.store.Configs().ListAllNonDeleted(ctx)
	if err != nil {
		return err
	}

	enabledDVPN, err := s.store.PeerSettings().ListEnabled(ctx)
	if err != nil {
		return err
	}
	dvpnSet := make(map[uuid.UUID]bool, len(enabledDVPN))
	for _, id := range enabledDVPN {
		dvpnSet[id] = true
	}

	batch := make([]wgnl.PeerUpdate, 0, len(configs))
	for _, cfg := range configs {
		addr := uint32ToAddr(cfg.Addr)

		s.mu.Lock()
		routeErr := s.rt.AddHostRoute(addr, s.ifaceIndex)
		s.mu.Unlock()
		if routeErr != nil && !netlink.IsAlreadyExists(routeErr) {
			klog.V(1).InfoS("init: route restore failed, continuing", "config", cfg.ID, "error", routeErr)
		}

		if dvpnSet[cfg.ID] {
			s.mu.Lock()
			ruleErr := s.rt.ChangeRule(addr, s.dvpnTable, true)
			s.mu.Unlock()
			if ruleErr != nil && !netlink.IsAlreadyExists(ruleErr) {
				klog.V(1).InfoS("init: rule restore failed, continuing", "config", cfg.ID, "error", ruleErr)
			}
		}

		var pubArr [32]byte
		copy(pubArr[:], cfg.PublicKey)
		batch = append(batch, wgnl.PeerUpdate{
			PublicKey:  &pubArr,
			AllowedIPs: []netip.Prefix{netip.PrefixFrom(addr, 32)},
		})
	}

	// The allocator cursor was already advanced past every existing config
	// when New constructed it; Init does not touch it again.
	s.mu.Lock()
	err = s.wg.Update(s.ifaceIndex, wgnl.Update{ReplacePeers: true, Peers: batch})
	s.mu.Unlock()
	return err
}

// PairCode produces a token binding the config's assigned address, for
// the caller to hand to an external identity claiming that tunnel.
func (s *Service) PairCode(ctx context.Context, callerID uuid.UUID, isAdmin bool, configID uuid.UUID) (string, error) {
	cfg, err := s.store.Configs().GetFull(ctx, configID)
	if err != nil {
		return "", err
	}
	if err := authz.CheckConfig(isAdmin, cfg.UserID == callerID, authz.ActionConfigRead); err != nil {
		return "", err
	}
	return s.codec.Sign(uint32ToAddr(cfg.Addr))
}

// CreateAssociation verifies a pair token, resolves the config it names,
// and binds the external identity to that config's owning user.
func (s *Service) CreateAssociation(ctx context.Context, token string, system string, externalID int64) (*model.User, error) {
	addr, err := s.codec.Verify(token)
	if err != nil {
		return nil, err
	}
	cfg, err := s.store.Configs().GetFullByAddr(ctx, addrToUint32(addr))
	if err != nil {
		return nil, err
	}
	if err := s.store.Integrations().Bind(ctx, cfg.UserID, system, externalID); err != nil {
		return nil, err
	}
	return s.store.Users().Get(ctx, cfg.UserID)
}

// AddAdmin grants the admin role to target; the caller must already be
// an admin.
func (s *Service) AddAdmin(ctx context.Context, callerIsAdmin bool, target uuid.UUID) error {
	if err := authz.CheckAdminManage(callerIsAdmin); err != nil {
		return err
	}
	return s.store.Roles().AddAdmin(ctx, target)
}

// RemoveAdmin revokes the admin role from target; the caller must
// already be an admin.
func (s *Service) RemoveAdmin(ctx context.Context, callerIsAdmin bool, target uuid.UUID) error {
	if err := authz.CheckAdminManage(callerIsAdmin); err != nil {
		return err
	}
	return s.store.Roles().RemoveAdmin(ctx, target)
}

// IsAdmin reports whether userID currently holds the admin role.
func (s *Service) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.store.Roles().IsAdmin(ctx, userID)
}

// ResolveUser resolves an external identity to the internal user it is
// bound to.
func (s *Service) ResolveUser(ctx context.Context, system string, externalID int64) (*model.User, error) {
	return s.store.Integrations().Resolve(ctx, system, externalID)
}

// EnsureUser resolves an external identity to its user, creating both
// the user and the integration binding on first contact.
func (s *Service) EnsureUser(ctx context.Context, system string, externalID int64) (*model.User, error) {
	return s.store.Integrations().EnsureUser(ctx, system, externalID)
}

func generateKeypair() (pub, priv []byte, err error) {
	var privArr [32]byte
	if _, err := rand.Read(privArr[:]); err != nil {
		return nil, nil, errors.WithCode(code.ErrServiceInvalidKey, "failed to generate private key: %s", err.Error())
	}
	// Clamp per RFC 7748 section 5.
	privArr[0] &= 248
	privArr[31] &= 127
	privArr[31] |= 64

	var pubArr [32]byte
	curve25519.ScalarBaseMult(&pubArr, &privArr)
	return pubArr[:], privArr[:], nil
}

func addrToUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func uint32ToAddr(v uint32) netip.Addr {
	return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}
