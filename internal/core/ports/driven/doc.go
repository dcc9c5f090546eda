// Package driven declares what the core needs from infrastructure.
//
// DocuFlowAPI, KVStore and ConfigStore must be wired. Notifier, URLOpener,
// ReportExporter and FileWatcher may be nil; the services then skip toasts,
// print links instead of opening them, and reject export and watch requests.
//
// Only the domain package may be imported from here.
package driven
