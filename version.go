package sdk

// Version is the published SDK version.
// 0.3.0: Entities are always returned flattened; legacy attributes-nested payloads are normalized.
// 0.2.0: Token state moved from a package-level client to auth.TokenStore passed through Config.
const Version = "0.3.0"
