package domain

const (
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	DEFAULT_IPFS_GATEWAY = "https://ipfs.io"

	// BASE_UNIT_DECIMALS is the display-decimal scale of marketplace prices
	BASE_UNIT_DECIMALS = 18
)
