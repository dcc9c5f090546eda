// Package services holds the DocuFlow client logic behind the driving ports:
// normalising workflow responses, aggregating reports, merging risk scores
// into the invoices cache, and persisting page state through driven.KVStore.
//
// Nothing here touches the network or the terminal directly.
package services
