// Package schema maps resource types to the fields they require and maps
// fields to the knowledge base properties that store them.
//
// Resource types form a closed set fixed at construction. Looking up a name
// outside that set fails with wbapi.ErrUnknownResourceType; it never produces
// a validation result.
package schema
