package dumpfun

import "crypto/sha256"

// Discriminator is the 8-byte prefix Anchor puts in front of account data
// and instruction arguments.
type Discriminator [8]byte

// accountDiscriminator returns sha256("account:<name>")[:8].
func accountDiscriminator(name string) Discriminator {
	return sighash("account", name)
}

// instructionDiscriminator returns sha256("global:<name>")[:8].
func instructionDiscriminator(name string) Discriminator {
	return sighash("global", name)
}

func sighash(namespace, name string) Discriminator {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d Discriminator
	copy(d[:], sum[:8])
	return d
}

var (
	configAccountDiscriminator       = accountDiscriminator("Config")
	bondingCurveAccountDiscriminator = accountDiscriminator("BondingCurve")

	launchInstructionDiscriminator = instructionDiscriminator("launch")
	swapInstructionDiscriminator   = instructionDiscriminator("swap")
)
