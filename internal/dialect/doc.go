// Package dialect bundles the probe dialect's runtime-extensible
// surface: the dynamic operation registry, the blob registry, the
// range-inference transfer table, and the effect-interface fallback.
// One Dialect instance belongs to one IR context; nothing here is safe
// for concurrent mutation.
package dialect
