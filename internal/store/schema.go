package store

// schema creates all tables on first open. Timestamps are stored as
// RFC3339 TEXT, calendar dates as YYYY-MM-DD TEXT.
const schema = `
CREATE TABLE IF NOT EXISTS word_mastery (
	word_id         INTEGER PRIMARY KEY AUTOINCREMENT,
	simplified      TEXT UNIQUE NOT NULL,
	traditional     TEXT NOT NULL DEFAULT '',
	pinyin          TEXT NOT NULL DEFAULT '',
	definitions     TEXT NOT NULL DEFAULT '',
	times_practiced INTEGER NOT NULL DEFAULT 0,
	times_correct   INTEGER NOT NULL DEFAULT 0,
	last_practiced  TEXT,
	first_learned   TEXT NOT NULL,
	mastery_level   TEXT NOT NULL DEFAULT 'new',
	next_review     TEXT,
	easiness_factor REAL NOT NULL DEFAULT 2.5,
	interval_days   INTEGER NOT NULL DEFAULT 0,
	repetitions     INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_word_mastery_next_review ON word_mastery(next_review);
CREATE INDEX IF NOT EXISTS idx_word_mastery_level ON word_mastery(mastery_level);

CREATE TABLE IF NOT EXISTS sessions (
	id             TEXT PRIMARY KEY,
	start_time     TEXT NOT NULL,
	end_time       TEXT,
	lesson_number  INTEGER NOT NULL DEFAULT 0,
	words_learned  INTEGER NOT NULL DEFAULT 0,
	quiz_score     REAL,
	session_type   TEXT NOT NULL DEFAULT 'lesson'
);

CREATE INDEX IF NOT EXISTS idx_sessions_start_time ON sessions(start_time);

CREATE TABLE IF NOT EXISTS user_progress (
	id                   INTEGER PRIMARY KEY CHECK(id = 1),
	level                INTEGER NOT NULL DEFAULT 1,
	total_xp             INTEGER NOT NULL DEFAULT 0,
	total_words_learned  INTEGER NOT NULL DEFAULT 0,
	current_streak       INTEGER NOT NULL DEFAULT 0,
	longest_streak       INTEGER NOT NULL DEFAULT 0,
	last_study_date      TEXT,
	daily_goal_minutes   INTEGER NOT NULL DEFAULT 15,
	best_quiz_score      REAL NOT NULL DEFAULT 0,
	total_sessions       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS achievements (
	achievement_id TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL,
	icon           TEXT NOT NULL DEFAULT '',
	category       TEXT NOT NULL,
	requirement    INTEGER NOT NULL,
	unlocked       INTEGER NOT NULL DEFAULT 0,
	unlocked_at    TEXT
);

CREATE TABLE IF NOT EXISTS pronunciation_history (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id      TEXT REFERENCES sessions(id),
	word            TEXT NOT NULL,
	score           INTEGER NOT NULL,
	recognized_text TEXT NOT NULL DEFAULT '',
	attempt_time    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS conversation_practice (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id   TEXT REFERENCES sessions(id),
	turn_number  INTEGER NOT NULL DEFAULT 1,
	user_message TEXT NOT NULL,
	ai_response  TEXT NOT NULL,
	corrections  TEXT NOT NULL DEFAULT '',
	suggestions  TEXT NOT NULL DEFAULT '',
	timestamp    TEXT NOT NULL
);
`
