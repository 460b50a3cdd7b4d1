// Package csvfile implements the catalog store on three CSV files.
//
// Files are authors.csv (id,name), genres.csv (id,name) and
// books.csv (id,title,author_id,description,genre_id), each with a header row.
// Every operation reads the files it needs, applies the change and rewrites the
// touched file in one write.
//
// New ids are the current maximum plus one. The files keep no high-water mark,
// so deleting the row holding the maximum id frees that id for the next add.
// Ids below the maximum are never handed out again. Callers must not rely on a
// deleted id staying unused.
//
// Files live behind a Blob: FSBlob keeps them in a directory of an afero file
// system, BucketBlob keeps them as objects in a MinIO/S3 bucket.
package csvfile
