package contracts

import (
	"fmt"

	"github.com/smartcontractkit/calldata"
	"github.com/smartcontractkit/calldata/types"
)

// Kind identifies a family of contract interfaces.
type Kind string

const (
	KindERC20         Kind = "erc20"
	KindSafe          Kind = "safe"
	KindMultiSend     Kind = "multisend"
	KindSettlement    Kind = "settlement"
	KindProxyFactory  Kind = "proxy_factory"
	KindDelayModifier Kind = "delay_modifier"
	KindVault         Kind = "vault"
)

// Entry is one registered contract interface.
type Entry struct {
	Kind    Kind
	Version Version
	Decoder *calldata.Decoder
}

// Registry holds one decoder per supported contract interface and version. It is built once and
// shared; all decoders use the same logger.
type Registry struct {
	erc20         *ERC20Decoder
	safe          map[Version]*SafeDecoder
	multiSend     map[Version]*MultiSendDecoder
	proxyFactory  map[Version]*ProxyFactoryDecoder
	settlement    *SettlementDecoder
	delayModifier *DelayModifierDecoder
	vault         *VaultDecoder

	// entries is the order Match tries the interfaces in. Newer releases come first.
	entries []Entry
}

var versioned = []Version{Version141, Version130}

// mustVersioned panics if a bundled version has no decoder, like calldata.MustNewDecoder does for
// a bundled ABI that fails to parse.
func mustVersioned[T any](d *T, err error) *T {
	if err != nil {
		panic(err)
	}

	return d
}

// NewRegistry builds the decoders for every bundled interface. It panics if a bundled version
// cannot be built.
func NewRegistry(opts ...calldata.Option) *Registry {
	r := &Registry{
		erc20:         NewERC20Decoder(opts...),
		safe:          make(map[Version]*SafeDecoder, len(versioned)),
		multiSend:     make(map[Version]*MultiSendDecoder, len(versioned)),
		proxyFactory:  make(map[Version]*ProxyFactoryDecoder, len(versioned)),
		settlement:    NewSettlementDecoder(opts...),
		delayModifier: NewDelayModifierDecoder(opts...),
		vault:         NewVaultDecoder(opts...),
	}

	for _, v := range versioned {
		r.safe[v] = mustVersioned(NewSafeDecoder(v, opts...))
		r.multiSend[v] = mustVersioned(NewMultiSendDecoder(v, opts...))
		r.proxyFactory[v] = mustVersioned(NewProxyFactoryDecoder(v, opts...))
	}

	r.entries = append(r.entries, Entry{Kind: KindERC20, Decoder: r.erc20.Decoder})
	for _, v := range versioned {
		r.entries = append(r.entries, Entry{Kind: KindSafe, Version: v, Decoder: r.safe[v].Decoder})
	}
	for _, v := range versioned {
		r.entries = append(r.entries, Entry{Kind: KindMultiSend, Version: v, Decoder: r.multiSend[v].Decoder})
	}
	r.entries = append(r.entries, Entry{Kind: KindSettlement, Decoder: r.settlement.Decoder})
	for _, v := range versioned {
		r.entries = append(r.entries, Entry{Kind: KindProxyFactory, Version: v, Decoder: r.proxyFactory[v].Decoder})
	}
	r.entries = append(r.entries,
		Entry{Kind: KindDelayModifier, Decoder: r.delayModifier.Decoder},
		Entry{Kind: KindVault, Decoder: r.vault.Decoder},
	)

	return r
}

func (r *Registry) ERC20() *ERC20Decoder {
	return r.erc20
}

func (r *Registry) Safe(version Version) (*SafeDecoder, error) {
	d, ok := r.safe[version]
	if !ok {
		return nil, unsupportedVersion(KindSafe, version)
	}

	return d, nil
}

func (r *Registry) MultiSend(version Version) (*MultiSendDecoder, error) {
	d, ok := r.multiSend[version]
	if !ok {
		return nil, unsupportedVersion(KindMultiSend, version)
	}

	return d, nil
}

func (r *Registry) ProxyFactory(version Version) (*ProxyFactoryDecoder, error) {
	d, ok := r.proxyFactory[version]
	if !ok {
		return nil, unsupportedVersion(KindProxyFactory, version)
	}

	return d, nil
}

func (r *Registry) Settlement() *SettlementDecoder {
	return r.settlement
}

func (r *Registry) DelayModifier() *DelayModifierDecoder {
	return r.delayModifier
}

func (r *Registry) Vault() *VaultDecoder {
	return r.vault
}

// Entries returns the registered interfaces in match order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Lookup returns the decoder registered for kind and version. Unversioned kinds are looked up
// with VersionNone.
func (r *Registry) Lookup(kind Kind, version Version) (*calldata.Decoder, error) {
	for _, e := range r.entries {
		if e.Kind == kind && e.Version == version {
			return e.Decoder, nil
		}
	}

	for _, e := range r.entries {
		if e.Kind == kind {
			return nil, unsupportedVersion(kind, version)
		}
	}

	return nil, fmt.Errorf("unknown contract kind %q", kind)
}

// Match decodes data against each registered interface in order and returns the first one it is
// a well formed call of. When a selector is shared by several interfaces the earliest entry wins.
func (r *Registry) Match(data []byte) (Entry, *types.DecodedCall, bool) {
	for _, e := range r.entries {
		if !e.Decoder.HasSelector(data) {
			continue
		}
		if call, ok := e.Decoder.TryDecodeFunctionData(data); ok {
			return e, call, true
		}
	}

	return Entry{}, nil, false
}
