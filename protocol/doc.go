/*
Package protocol provides the structures exchanged through the structured
data API.

Basics

An ItemRecord represents one item of an application: an ordered mapping of
field name to generic value, identified by an ItemID ("<document>" or
"<document>|<number>"), optionally carrying a DocumentMetadata snapshot of
its hosting document. A Schema maps field names to FieldDescriptor values
describing the application's structure.

ItemQueryOptions models the listing parameters accepted by the items
resources, and OperationResult reports store and delete outcomes in-band
with a Success or Error key.
*/
package protocol
