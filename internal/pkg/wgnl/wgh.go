package wgnl

// Constants mirroring the kernel's WireGuard generic-netlink ABI
// (uapi/linux/wireguard.h). Kept as a small, local "wgh" table rather
// than importing wgctrl's unexported internal package, matching how the
// retrieval pack's own wgctrl-derived clients define these locally.
const (
	genlName    = "wireguard"
	genlVersion = 1

	cmdGetDevice = 0
	cmdSetDevice = 1

	deviceFUnspec      = 0
	deviceAUnspec      = 0
	deviceAIfindex     = 1
	deviceAIfname      = 2
	deviceAPrivateKey  = 3
	deviceAPublicKey   = 4
	deviceAFlags       = 5
	deviceAListenPort  = 6
	deviceAFwmark      = 7
	deviceAPeers       = 8

	deviceFReplacePeers = 1 << 0

	peerAUnspec                       = 0
	peerAPublicKey                    = 1
	peerAPresharedKey                 = 2
	peerAFlags                        = 3
	peerAEndpoint                     = 4
	peerAPersistentKeepaliveInterval  = 5
	peerALastHandshakeTime            = 6
	peerARxBytes                      = 7
	peerATxBytes                      = 8
	peerAAllowedips                   = 9
	peerAProtocolVersion              = 10

	peerFRemoveMe            = 1 << 0
	peerFReplaceAllowedips   = 1 << 1
	peerFUpdateOnly          = 1 << 2

	allowedipAUnspec   = 0
	allowedipAFamily   = 1
	allowedipAIpaddr   = 2
	allowedipACidrMask = 3

	keyLen = 32
)
