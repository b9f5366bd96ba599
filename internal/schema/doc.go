// Package schema is the boundary to the definition parser. The store only
// sees the Parser and Registry interfaces declared here; the Avro adapter
// translates hamba/avro parsing into the tagged outcomes the store acts on:
// a schema, an UnresolvedReferenceError naming the missing type, or an
// opaque error that is propagated untouched.
package schema
