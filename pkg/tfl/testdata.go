package tfl

// JSON fixtures mirroring the TfL Unified API response shapes, trimmed to
// the fields the client reads.

const testLinesJSON = `[
  {"id": "northern", "name": "Northern", "modeName": "tube"},
  {"id": "victoria", "name": "Victoria", "modeName": "tube"}
]`

const testNorthernStopsJSON = `[
  {"naptanId": "940GZZLUBNK", "commonName": "Bank Underground Station"},
  {"naptanId": "940GZZLUOVL", "commonName": "Oval Underground Station"}
]`

const testVictoriaStopsJSON = `[
  {"naptanId": "940GZZLUOVL", "commonName": "Oval Underground Station"},
  {"naptanId": "940GZZLUPCO", "commonName": "Pimlico Underground Station"},
  {"naptanId": "940GZZLUVXL", "commonName": "Vauxhall Underground Station"}
]`

const testRateLimitJSON = `{
  "statusCode": 429,
  "message": "Rate limit is exceeded. Try again in 1 seconds."
}`
