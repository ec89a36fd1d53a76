// Package maintenance runs periodic housekeeping jobs against the store.
//
// The only job today is the orphan sweeper. Linkage rows reference sets
// without a foreign key, so a set removed outside the service layer (for
// example by hand in a SQL console) leaves its linkages behind. The sweeper
// deletes them on a cron schedule.
package maintenance
