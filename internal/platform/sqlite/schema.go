package sqlite

const schema = `
-- The 'items' table stores each vocabulary entry with its review state.
-- is_mastered duplicates mastery_level >= 5 so due-item queries can filter
-- on it without knowing the ladder.
CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    term TEXT NOT NULL,
    translation TEXT NOT NULL DEFAULT '',
    language TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL,
    last_reviewed_at DATETIME,
    review_count INTEGER NOT NULL DEFAULT 0,
    mastery_level INTEGER NOT NULL DEFAULT 0,
    is_mastered INTEGER NOT NULL DEFAULT 0,
    next_review_at DATETIME
);

-- The 'study_days' table is the append-only set of calendar days with at
-- least one graded answer, keyed as YYYY-MM-DD.
CREATE TABLE IF NOT EXISTS study_days (
    day TEXT PRIMARY KEY
);

-- The 'stories' table caches generated daily stories, one per language per
-- calendar day. word_ids and questions are stored as JSON documents.
CREATE TABLE IF NOT EXISTS stories (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    language TEXT NOT NULL DEFAULT '',
    word_ids TEXT NOT NULL DEFAULT '[]',
    questions TEXT NOT NULL DEFAULT '[]',
    created_at DATETIME NOT NULL,
    day TEXT NOT NULL,
    quiz_completed INTEGER NOT NULL DEFAULT 0,
    quiz_score INTEGER NOT NULL DEFAULT 0,
    UNIQUE (language, day)
);
`
