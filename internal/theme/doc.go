// Package theme implements hl's style/theme resolver (SPEC_FULL §4.8,
// C8): loading v0/v1 theme documents from TOML/YAML/JSON, validating them
// against version-specific schemas, and resolving element/role
// inheritance into per-level [StylePack]s the formatter renders with.
package theme
