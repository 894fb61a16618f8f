// SPDX-License-Identifier: MIT

package synapses

// Method names used to prefix errors and log lines.
const (
	// MethodNew is the canonical name for New.
	MethodNew = "New"
	// MethodConnect is the canonical name for Builder.Connect.
	MethodConnect = "Connect"
	// MethodVerify is the canonical name for Builder.Verify and VerifyEdges.
	MethodVerify = "Verify"
)

// DefaultBufferSize is the staging capacity used when WithBufferSize is not
// given.
const DefaultBufferSize = 1024
