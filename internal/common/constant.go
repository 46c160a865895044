package common

// AccessTokenHeaderName is the gRPC metadata key that carries the pairing
// token of a companion device.
const AccessTokenHeaderName = "access_token"

// DefaultLanguage is reported when language detection is inconclusive.
const DefaultLanguage = "en"
