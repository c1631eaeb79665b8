package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/smartcontractkit/calldata"
)

const proxyFactoryFunctionsABI = `
	{"type":"function","name":"createProxyWithNonce","stateMutability":"nonpayable","inputs":[{"name":"_singleton","type":"address"},{"name":"initializer","type":"bytes"},{"name":"saltNonce","type":"uint256"}],"outputs":[{"name":"proxy","type":"address"}]},`

const (
	ProxyFactoryABIv130 = `[` + proxyFactoryFunctionsABI + `
	{"type":"event","name":"ProxyCreation","anonymous":false,"inputs":[{"name":"proxy","type":"address","indexed":false},{"name":"singleton","type":"address","indexed":false}]}
]`
	ProxyFactoryABIv141 = `[` + proxyFactoryFunctionsABI + `
	{"type":"event","name":"ProxyCreation","anonymous":false,"inputs":[{"name":"proxy","type":"address","indexed":true},{"name":"singleton","type":"address","indexed":false}]}
]`
)

type ProxyFactoryCreateProxyWithNonce struct {
	Singleton   common.Address `abi:"_singleton"`
	Initializer []byte         `abi:"initializer"`
	SaltNonce   *big.Int       `abi:"saltNonce"`
}

// ProxyCreation is emitted when the factory deploys a Safe proxy.
type ProxyCreation struct {
	Proxy     common.Address `abi:"proxy"`
	Singleton common.Address `abi:"singleton"`
}

// ProxyFactoryDecoder decodes calls to the Safe proxy factory.
type ProxyFactoryDecoder struct {
	*calldata.Decoder

	version Version
}

func NewProxyFactoryDecoder(version Version, opts ...calldata.Option) (*ProxyFactoryDecoder, error) {
	var abiJSON string
	switch version {
	case Version130:
		abiJSON = ProxyFactoryABIv130
	case Version141:
		abiJSON = ProxyFactoryABIv141
	default:
		return nil, unsupportedVersion(KindProxyFactory, version)
	}

	return &ProxyFactoryDecoder{
		Decoder: calldata.MustNewDecoder("SafeProxyFactory "+string(version), abiJSON, opts...),
		version: version,
	}, nil
}

func (d *ProxyFactoryDecoder) Version() Version {
	return d.version
}

func (d *ProxyFactoryDecoder) DecodeCreateProxyWithNonce(data []byte) (*ProxyFactoryCreateProxyWithNonce, error) {
	return decodeAs[ProxyFactoryCreateProxyWithNonce](d.Decoder, "createProxyWithNonce", data)
}

func (d *ProxyFactoryDecoder) EncodeCreateProxyWithNonce(singleton common.Address, initializer []byte, saltNonce *big.Int) ([]byte, error) {
	return d.EncodeFunctionData("createProxyWithNonce", singleton, initializer, saltNonce)
}

func (d *ProxyFactoryDecoder) DecodeProxyCreation(log *gethtypes.Log) (*ProxyCreation, bool) {
	return decodeEventAs[ProxyCreation](d.Decoder, "ProxyCreation", log)
}
