package light

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture. Quality profiles override it per tier.
const ShadowMapResolution = 2048

// MinShadowMapResolution is the smallest accepted shadow map size.
const MinShadowMapResolution = 256

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne on the sphere's aperture walls.
const DefaultShadowBias float32 = 0.001
