/*
Package ports defines the driven ports (interfaces) of ostia.

# Key Interfaces

  - ModelStore: persists learned transducers as domain.Model records.

RunModelStoreContract is a reusable test suite every ModelStore adapter runs.
*/
package ports
